package repair

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/application/repair/usecases"
	"repairdesk/internal/interfaces/http/handlers/testutil"
	"repairdesk/internal/shared/authorization"
	"repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateRepairUC struct {
	result *dto.RepairDTO
	err    error
	got    usecases.CreateRepairCommand
}

func (m *mockCreateRepairUC) Execute(_ context.Context, cmd usecases.CreateRepairCommand) (*dto.RepairDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateRepairUC struct {
	result *dto.RepairDTO
	err    error
	got    usecases.UpdateRepairCommand
}

func (m *mockUpdateRepairUC) Execute(_ context.Context, cmd usecases.UpdateRepairCommand) (*dto.RepairDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateStatusUC struct {
	result *dto.RepairDTO
	err    error
	got    usecases.UpdateRepairStatusCommand
}

func (m *mockUpdateStatusUC) Execute(_ context.Context, cmd usecases.UpdateRepairStatusCommand) (*dto.RepairDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteRepairUC struct {
	err error
	got usecases.DeleteRepairCommand
}

func (m *mockDeleteRepairUC) Execute(_ context.Context, cmd usecases.DeleteRepairCommand) error {
	m.got = cmd
	return m.err
}

type mockListRepairsUC struct {
	result *usecases.ListRepairsResult
	err    error
	got    usecases.ListRepairsQuery
}

func (m *mockListRepairsUC) Execute(_ context.Context, q usecases.ListRepairsQuery) (*usecases.ListRepairsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockGetRepairUC struct {
	result *dto.RepairDTO
	err    error
}

func (m *mockGetRepairUC) Execute(_ context.Context, _ usecases.GetRepairQuery) (*dto.RepairDTO, error) {
	return m.result, m.err
}

type handlerMocks struct {
	create *mockCreateRepairUC
	update *mockUpdateRepairUC
	status *mockUpdateStatusUC
	delete *mockDeleteRepairUC
	list   *mockListRepairsUC
	get    *mockGetRepairUC
}

func newTestHandler(limits UploadLimits) (*RepairHandler, *handlerMocks) {
	m := &handlerMocks{
		create: &mockCreateRepairUC{result: &dto.RepairDTO{ID: 1, Status: "pending"}},
		update: &mockUpdateRepairUC{result: &dto.RepairDTO{ID: 1}},
		status: &mockUpdateStatusUC{result: &dto.RepairDTO{ID: 1, Status: "completed"}},
		delete: &mockDeleteRepairUC{},
		list:   &mockListRepairsUC{result: &usecases.ListRepairsResult{Repairs: []*dto.RepairDTO{{ID: 1}}, Total: 7}},
		get:    &mockGetRepairUC{result: &dto.RepairDTO{ID: 1}},
	}
	h := NewRepairHandler(m.create, m.update, m.status, m.delete, m.list, m.get, limits, logger.NewNopLogger())
	return h, m
}

var defaultLimits = UploadLimits{MaxFileSize: 5 << 20, MaxFiles: 50}

func createFields() map[string]string {
	return map[string]string{
		"title":       "Leaky <b>faucet</b>",
		"description": "Drips all night",
		"category_id": "1",
		"location":    "Room 204",
		"priority":    "medium",
	}
}

// =====================================================================
// Tests
// =====================================================================

func TestCreateRepair_Multipart(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	c, w := testutil.NewMultipartContext(http.MethodPost, "/repairs", createFields(),
		testutil.File{Field: "images", Name: "imgA.jpg", ContentType: "image/jpeg", Body: []byte("jpeg-bytes")},
	)
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.CreateRepair(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Leaky faucet", m.create.got.Title)
	assert.Equal(t, uint(1), m.create.got.CategoryID)
	assert.Equal(t, uint(3), m.create.got.Actor.UserID)
	assert.Equal(t, authorization.RoleUser, m.create.got.Actor.Role)
	require.Len(t, m.create.got.Images, 1)

	img := m.create.got.Images[0]
	assert.Equal(t, "imgA.jpg", img.OriginalName)
	assert.Equal(t, "image/jpeg", img.ContentType)
	rc, err := img.Open()
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "jpeg-bytes", string(body))
}

func TestCreateRepair_PlainTextSurvives(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	fields := createFields()
	fields["title"] = "Tom's sink & drain"
	fields["location"] = `Room "B" & C`
	c, w := testutil.NewMultipartContext(http.MethodPost, "/repairs", fields)
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.CreateRepair(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Tom's sink & drain", m.create.got.Title)
	assert.Equal(t, `Room "B" & C`, m.create.got.Location)
}

func TestCreateRepair_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing title", func(f map[string]string) { delete(f, "title") }},
		{"blank description", func(f map[string]string) { f["description"] = "   " }},
		{"missing category", func(f map[string]string) { delete(f, "category_id") }},
		{"bad priority", func(f map[string]string) { f["priority"] = "asap" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(defaultLimits)
			fields := createFields()
			tt.mutate(fields)
			c, w := testutil.NewMultipartContext(http.MethodPost, "/repairs", fields)
			testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

			h.CreateRepair(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, m.create.got.Title, "use case must not run")
		})
	}
}

func TestCreateRepair_UploadLimits(t *testing.T) {
	h, m := newTestHandler(UploadLimits{MaxFileSize: 4, MaxFiles: 2})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/repairs", createFields(),
		testutil.File{Field: "images", Name: "big.jpg", ContentType: "image/jpeg", Body: []byte("too big")},
	)
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")
	h.CreateRepair(c)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	small := testutil.File{Field: "images", Name: "s.jpg", ContentType: "image/jpeg", Body: []byte("ok")}
	c, w = testutil.NewMultipartContext(http.MethodPost, "/repairs", createFields(), small, small, small)
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")
	h.CreateRepair(c)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	assert.Empty(t, m.create.got.Title)
}

func TestUpdateRepair_OptionalFields(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	c, w := testutil.NewMultipartContext(http.MethodPut, "/repairs/5", map[string]string{
		"location":    "Room 205",
		"keep_images": `[1, {"type":"legacy"}]`,
		"version":     "3",
	})
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.UpdateRepair(c)

	assert.Equal(t, http.StatusOK, w.Code)
	got := m.update.got
	assert.Equal(t, uint(5), got.RepairID)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.Priority)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Room 205", *got.Location)
	require.NotNil(t, got.KeepImages)
	assert.Equal(t, `[1, {"type":"legacy"}]`, *got.KeepImages)
	require.NotNil(t, got.ExpectedVersion)
	assert.Equal(t, 3, *got.ExpectedVersion)
}

func TestUpdateRepair_NoKeepListMeansNil(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	c, w := testutil.NewTestContext(http.MethodPut, "/repairs/5", map[string]any{"title": "New"})
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.UpdateRepair(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, m.update.got.KeepImages)
	assert.Empty(t, m.update.got.Images)
}

func TestUpdateStatus_JSONAndErrorMapping(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	c, w := testutil.NewTestContext(http.MethodPatch, "/repairs/9/status", map[string]any{
		"status":             "completed",
		"completion_details": "Fixed <script>x</script>",
	})
	testutil.SetURLParam(c, "id", "9")
	testutil.SetAuthContext(c, 2, authorization.RoleTechnician, "Tom Tech")

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", m.status.got.Status)
	require.NotNil(t, m.status.got.CompletionDetails)
	assert.Equal(t, "Fixed", *m.status.got.CompletionDetails)
	assert.Equal(t, "Tom Tech", m.status.got.Actor.FullName)

	tests := []struct {
		err  error
		code int
	}{
		{errors.NewValidationError("completion details are required"), http.StatusBadRequest},
		{errors.NewForbiddenError("only staff"), http.StatusForbidden},
		{errors.NewNotFoundError("repair not found"), http.StatusNotFound},
		{errors.NewConflictError("stale"), http.StatusConflict},
		{errors.NewInvalidStateError("not pending"), http.StatusConflict},
		{errors.NewUnsupportedMediaTypeError("no pdf"), http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		h, m := newTestHandler(defaultLimits)
		m.status.err = tt.err
		c, w := testutil.NewTestContext(http.MethodPatch, "/repairs/9/status", map[string]any{"status": "assigned"})
		testutil.SetURLParam(c, "id", "9")
		testutil.SetAuthContext(c, 2, authorization.RoleTechnician, "Tom Tech")

		h.UpdateStatus(c)

		assert.Equal(t, tt.code, w.Code, tt.err.Error())
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	h, _ := newTestHandler(defaultLimits)
	c, w := testutil.NewTestContext(http.MethodPatch, "/repairs/9/status", map[string]any{"status": "done"})
	testutil.SetURLParam(c, "id", "9")
	testutil.SetAuthContext(c, 2, authorization.RoleTechnician, "Tom Tech")

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRepairs_PaginationOnlyWhenRequested(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	c, w := testutil.NewTestContext(http.MethodGet, "/repairs", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "pending", "category_id": "2"})
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.ListRepairs(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", m.list.got.Status)
	require.NotNil(t, m.list.got.CategoryID)
	assert.Equal(t, uint(2), *m.list.got.CategoryID)
	assert.Zero(t, m.list.got.Page)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.NotContains(t, data, "pagination")
	assert.JSONEq(t, "7", string(data["total"]))

	h, m = newTestHandler(defaultLimits)
	c, w = testutil.NewTestContext(http.MethodGet, "/repairs", nil)
	testutil.SetQueryParams(c, map[string]string{"limit": "5"})
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.ListRepairs(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, m.list.got.Page)
	assert.Equal(t, 5, m.list.got.Limit)
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Contains(t, data, "pagination")
}

func TestGetRepair_InvalidID(t *testing.T) {
	h, _ := newTestHandler(defaultLimits)
	c, w := testutil.NewTestContext(http.MethodGet, "/repairs/abc", nil)
	testutil.SetURLParam(c, "id", "abc")
	testutil.SetAuthContext(c, 3, authorization.RoleUser, "Alice Resident")

	h.GetRepair(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRepair(t *testing.T) {
	h, m := newTestHandler(defaultLimits)
	c, w := testutil.NewTestContext(http.MethodDelete, "/repairs/4?version=2", nil)
	testutil.SetURLParam(c, "id", "4")
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin, "Ada Admin")

	h.DeleteRepair(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), m.delete.got.RepairID)
	require.NotNil(t, m.delete.got.ExpectedVersion)
	assert.Equal(t, 2, *m.delete.got.ExpectedVersion)
	assert.True(t, m.delete.got.Actor.Role.IsAdmin())
}
