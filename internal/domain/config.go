package domain

import "encoding/json"

// Keys of the persisted run configuration touched by the overlay
const (
	KeyBaseURL       = "baseUrl"
	KeyAdminLogin    = "admin_login"
	KeyAdminPassword = "admin_pwd"
	KeyTestProject   = "TEST_PROJECT"
)

// RunConfiguration is the persisted configuration the test engine reads at
// start-up. Unknown fields are kept as decoded and written back untouched.
type RunConfiguration map[string]any

// TestProject is the descriptor stored under TEST_PROJECT
type TestProject struct {
	ID int `json:"id"`
}

// String returns the string value stored at key, or "".
func (c RunConfiguration) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// ProjectID returns TEST_PROJECT.id when it is an integer.
func (c RunConfiguration) ProjectID() (int, bool) {
	switch p := c[KeyTestProject].(type) {
	case TestProject:
		return p.ID, true
	case map[string]any:
		switch id := p["id"].(type) {
		case json.Number:
			n, err := id.Int64()
			return int(n), err == nil
		case float64:
			return int(id), id == float64(int(id))
		case int:
			return id, true
		}
	}
	return 0, false
}
