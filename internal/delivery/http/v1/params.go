package v1

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Brend-VanDenEynde/planner-api/internal/services"
)

type paginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// parsePagination reads limit and offset from the query string. A limit
// that is missing, malformed or not positive becomes the default; so does
// a missing, malformed or negative offset.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = services.DefaultListLimit
	}

	offset, err = strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID reads the numeric id path parameter. Ids that don't parse can't
// match any row, so callers answer them with 404.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// idField is a numeric id in a request body. Clients send it either as a
// JSON number or as a string holding a number. Null or an absent field
// leaves it unset.
type idField struct {
	value int64
	set   bool
}

func (f *idField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = idField{}
		return nil
	}

	var number json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		number = json.Number(strings.TrimSpace(s))
	} else if err := json.Unmarshal(data, &number); err != nil {
		return err
	}

	value, err := strconv.ParseInt(number.String(), 10, 64)
	if err != nil {
		return err
	}
	*f = idField{value: value, set: true}
	return nil
}
