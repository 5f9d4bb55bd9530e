package respond

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

// Error represents the standard structure for error responses.
type Error struct {
	Err string `json:"error"`
}

// JSON sends a JSON response with the specified HTTP status code and data.
// It uses the Gin context to encode the data into JSON format.
func JSON(c *ginext.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK sends a 200 OK JSON response with the given payload.
func OK(c *ginext.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Fail sends an error JSON response with the specified HTTP status code.
// The error message is wrapped in an Error struct.
func Fail(c *ginext.Context, status int, err error) {
	JSON(c, status, Error{Err: err.Error()})
}
