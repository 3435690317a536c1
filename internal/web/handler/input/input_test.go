package input

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/manojkumarbalamurugan16/task/internal/config"
	"github.com/manojkumarbalamurugan16/task/internal/db/controller/group"
	"github.com/manojkumarbalamurugan16/task/internal/db/dbtest"
	"github.com/manojkumarbalamurugan16/task/internal/db/models"
	"github.com/manojkumarbalamurugan16/task/internal/web/handler"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, uint) {
	t.Helper()

	db := dbtest.Open(t)
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	s := &Service{}
	require.NoError(t, s.Init(app, &config.Config{}, db))

	g, err := group.Create(db, "Colors")
	require.NoError(t, err)

	return app, db, g.ID
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

func errorOf(t *testing.T, raw []byte) string {
	t.Helper()

	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))

	return body.Error
}

func seedInput(t *testing.T, db *gorm.DB, in models.Input) models.Input {
	t.Helper()

	if in.Status == "" {
		in.Status = models.InputStatusActive
	}

	require.NoError(t, db.Create(&in).Error)

	return in
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name           string
		body           func(groupID uint) string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "minimal",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d,"name":"Red"}`, g) },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "legacy key casing",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupID":%d,"Name":"Red"}`, g) },
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing group id",
			body:           func(uint) string { return `{"name":"Red"}` },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Group ID and Name are required",
		},
		{
			name:           "missing name",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d}`, g) },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Group ID and Name are required",
		},
		{
			name:           "blank name",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d,"name":"  "}`, g) },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Input name is required",
		},
		{
			name:           "unknown group",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d,"name":"Red"}`, g+1) },
			expectedStatus: http.StatusNotFound,
			expectedError:  "Group not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _, gid := setupTestApp(t)

			status, raw := doRequest(t, app, http.MethodPost, "/api/inputs", tc.body(gid))
			assert.Equal(t, tc.expectedStatus, status)

			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, errorOf(t, raw))

				return
			}

			var got Response
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.NotZero(t, got.ID)
			assert.Equal(t, gid, got.GroupID)
			assert.Equal(t, "Red", got.Name)
			assert.False(t, got.IsSelected)
			assert.False(t, got.IsDeleted)
			assert.Equal(t, 0, got.OrderNum)
		})
	}
}

func TestListByGroupAndGet(t *testing.T) {
	app, db, gid := setupTestApp(t)

	blue := seedInput(t, db, models.Input{GroupID: gid, Name: "Blue", OrderNum: 1})
	red := seedInput(t, db, models.Input{GroupID: gid, Name: "Red", OrderNum: 0, Status: models.InputStatusDeleted})

	status, raw := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/inputs/group/%d", gid), "")
	require.Equal(t, http.StatusOK, status)

	var list []Response
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 2)
	assert.Equal(t, red.ID, list[0].ID)
	assert.True(t, list[0].IsDeleted)
	assert.Equal(t, blue.ID, list[1].ID)

	status, raw = doRequest(t, app, http.MethodGet, "/api/inputs/group/999", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/inputs/%d", blue.ID), "")
	require.Equal(t, http.StatusOK, status)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Blue", got["name"])
	assert.Equal(t, false, got["isDeleted"])
	assert.Contains(t, got, "groupId")
	assert.Contains(t, got, "orderNum")

	status, raw = doRequest(t, app, http.MethodGet, "/api/inputs/999", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Input not found", errorOf(t, raw))
}

func TestUpdate(t *testing.T) {
	testCases := []struct {
		name           string
		missing        bool
		body           string
		expectedStatus int
		expectedError  string
		check          func(t *testing.T, got Response)
	}{
		{
			name:           "select",
			body:           `{"isSelected":true}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got Response) {
				t.Helper()
				assert.True(t, got.IsSelected)
				assert.Equal(t, "Red", got.Name)
			},
		},
		{
			name:           "rename and move",
			body:           `{"name":"Crimson","orderNum":4}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got Response) {
				t.Helper()
				assert.Equal(t, "Crimson", got.Name)
				assert.Equal(t, 4, got.OrderNum)
			},
		},
		{
			name:           "soft delete through update",
			body:           `{"isDeleted":true}`,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, got Response) {
				t.Helper()
				assert.True(t, got.IsDeleted)
			},
		},
		{
			name:           "no fields",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "No fields to update",
		},
		{
			name:           "no body",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "No fields to update",
		},
		{
			name:           "malformed body",
			body:           `{"isSelected":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.MsgInvalidBody,
		},
		{
			name:           "missing input",
			missing:        true,
			body:           `{"isSelected":true}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Input not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, db, gid := setupTestApp(t)
			red := seedInput(t, db, models.Input{GroupID: gid, Name: "Red"})

			id := red.ID
			if tc.missing {
				id += 100
			}

			status, raw := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/inputs/%d", id), tc.body)
			assert.Equal(t, tc.expectedStatus, status)

			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, errorOf(t, raw))

				return
			}

			var got Response
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, red.ID, got.ID)
			tc.check(t, got)
		})
	}
}

func TestDelete(t *testing.T) {
	app, db, gid := setupTestApp(t)
	red := seedInput(t, db, models.Input{GroupID: gid, Name: "Red"})

	status, raw := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/inputs/%d", red.ID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Input deleted successfully"}`, string(raw))

	var stored models.Input
	require.NoError(t, db.First(&stored, red.ID).Error)
	assert.True(t, stored.IsDeleted())

	status, raw = doRequest(t, app, http.MethodDelete, "/api/inputs/999", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Input not found", errorOf(t, raw))
}

func TestBulk(t *testing.T) {
	app, db, gid := setupTestApp(t)

	status, raw := doRequest(t, app, http.MethodPost, "/api/inputs/bulk",
		fmt.Sprintf(`{"groupId":%d,"inputs":[{"name":"Red","orderNum":0},{"name":"Blue","orderNum":1}]}`, gid))
	require.Equal(t, http.StatusOK, status)

	var res BulkResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, MsgSaved, res.Message)
	require.Len(t, res.Inputs, 2)

	red, blue := res.Inputs[0], res.Inputs[1]
	assert.Equal(t, "Red", red.Name)
	assert.Equal(t, "Blue", blue.Name)

	status, raw = doRequest(t, app, http.MethodPost, "/api/inputs/bulk",
		fmt.Sprintf(`{"groupId":%d,"inputs":[{"id":%d,"name":"Red","isSelected":true,"orderNum":0}]}`, gid, red.ID))
	require.Equal(t, http.StatusOK, status)

	res = BulkResponse{}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Len(t, res.Inputs, 2, "soft-deleted inputs stay listed")
	assert.True(t, res.Inputs[0].IsSelected)
	assert.False(t, res.Inputs[0].IsDeleted)
	assert.Equal(t, blue.ID, res.Inputs[1].ID)
	assert.True(t, res.Inputs[1].IsDeleted)

	var count int64
	require.NoError(t, db.Model(&models.Input{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestBulkErrors(t *testing.T) {
	testCases := []struct {
		name           string
		body           func(groupID uint) string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing group id",
			body:           func(uint) string { return `{"inputs":[]}` },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Group ID and inputs array are required",
		},
		{
			name:           "missing inputs",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d}`, g) },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Group ID and inputs array are required",
		},
		{
			name:           "inputs not an array",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d,"inputs":"Red"}`, g) },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Group ID and inputs array are required",
		},
		{
			name: "blank name",
			body: func(g uint) string {
				return fmt.Sprintf(`{"groupId":%d,"inputs":[{"name":"Red"},{"name":" "}]}`, g)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Input name is required",
		},
		{
			name:           "unknown group",
			body:           func(g uint) string { return fmt.Sprintf(`{"groupId":%d,"inputs":[]}`, g+1) },
			expectedStatus: http.StatusNotFound,
			expectedError:  "Group not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, db, gid := setupTestApp(t)
			red := seedInput(t, db, models.Input{GroupID: gid, Name: "Red"})

			status, raw := doRequest(t, app, http.MethodPost, "/api/inputs/bulk", tc.body(gid))
			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedError, errorOf(t, raw))

			var stored models.Input
			require.NoError(t, db.First(&stored, red.ID).Error)
			assert.False(t, stored.IsDeleted(), "failed bulk saves write nothing")
		})
	}
}

func TestBulkEmptyList(t *testing.T) {
	app, db, gid := setupTestApp(t)
	seedInput(t, db, models.Input{GroupID: gid, Name: "Red"})

	status, raw := doRequest(t, app, http.MethodPost, "/api/inputs/bulk", fmt.Sprintf(`{"groupId":%d,"inputs":[]}`, gid))
	require.Equal(t, http.StatusOK, status)

	var res BulkResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Len(t, res.Inputs, 1)
	assert.True(t, res.Inputs[0].IsDeleted)
}
