package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleet-admin-api-server/config"
	"fleet-admin-api-server/internal/models"
	"fleet-admin-api-server/internal/store"
	"fleet-admin-api-server/internal/upload"
)

// fakeEmployeeStore implements store.Employees in memory with the same
// normalization, uniqueness and status rules as the Mongo store.
type fakeEmployeeStore struct {
	docs map[primitive.ObjectID]models.Employee
}

func (f *fakeEmployeeStore) Create(_ context.Context, e models.Employee) (*models.Employee, error) {
	e.StaffNumber = strings.ToLower(e.StaffNumber)
	e.Email = strings.ToLower(e.Email)
	e.Status = strings.ToLower(e.Status)
	if err := store.ValidateEmployeeStatus(e.Status); err != nil {
		return nil, err
	}
	for _, existing := range f.docs {
		if existing.StaffNumber == e.StaffNumber {
			return nil, &store.DuplicateKeyError{Field: "staffNumber", Value: e.StaffNumber}
		}
		if existing.Email == e.Email {
			return nil, &store.DuplicateKeyError{Field: "email", Value: e.Email}
		}
	}
	if e.Status == "" {
		e.Status = "active"
	}
	e.ID = primitive.NewObjectID()
	f.docs[e.ID] = e
	return &e, nil
}

func (f *fakeEmployeeStore) FindByID(_ context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	e, ok := f.docs[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEmployeeStore) FindAll(_ context.Context, filter bson.M) ([]models.Employee, error) {
	all := []models.Employee{}
	for _, e := range f.docs {
		if dep, ok := filter["department"].(primitive.ObjectID); ok {
			if e.Department == nil || *e.Department != dep {
				continue
			}
		}
		all = append(all, e)
	}
	return all, nil
}

func (f *fakeEmployeeStore) UpdateByID(ctx context.Context, id string, changes bson.M) (*models.Employee, error) {
	e, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status, ok := changes["status"].(string); ok {
		status = strings.ToLower(status)
		if err := store.ValidateEmployeeStatus(status); err != nil {
			return nil, err
		}
		e.Status = status
	}
	if v, ok := changes["firstName"].(string); ok {
		e.FirstName = v
	}
	if v, ok := changes["lastName"].(string); ok {
		e.LastName = v
	}
	if v, ok := changes["staffNumber"].(string); ok {
		e.StaffNumber = strings.ToLower(v)
	}
	if v, ok := changes["email"].(string); ok {
		e.Email = strings.ToLower(v)
	}
	if v, ok := changes["phoneNumber"].(string); ok {
		e.PhoneNumber = v
	}
	if v, ok := changes["photo"].(string); ok {
		e.Photo = v
	}
	f.docs[e.ID] = *e
	return e, nil
}

func (f *fakeEmployeeStore) DeleteByID(ctx context.Context, id string) (*models.Employee, error) {
	e, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(f.docs, e.ID)
	return e, nil
}

func newEmployeeRouter() (*gin.Engine, *fakeEmployeeStore) {
	gin.SetMode(gin.TestMode)
	fake := &fakeEmployeeStore{docs: map[primitive.ObjectID]models.Employee{}}
	files := newMemoryStorage()
	uploads := upload.NewAdapter(files, config.UploadsConfig{
		MaxFiles:      5,
		MaxFileSizeMB: 5,
		Resources: map[string]config.UploadResourceConfig{
			"employees": {Subfolder: "employees", Prefix: "employee"},
		},
	})
	h := &EmployeeHandler{Store: fake, Uploads: uploads, Files: files}

	router := gin.New()
	router.POST("/employees", h.CreateEmployee)
	router.GET("/employees/:id", h.GetEmployee)
	router.PUT("/employees/:id", h.UpdateEmployee)
	router.DELETE("/employees/:id", h.DeleteEmployee)
	return router, fake
}

func doForm(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func employeeForm() url.Values {
	return url.Values{
		"firstName":   {"ama"},
		"lastName":    {"mensah"},
		"staffNumber": {"EMP-001"},
		"email":       {"ama@example.com"},
		"phoneNumber": {"0244000000"},
	}
}

func createEmployee(t *testing.T, router *gin.Engine, form url.Values) models.Employee {
	t.Helper()
	w := doForm(router, http.MethodPost, "/employees", form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var e models.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestEmployeeStatusEnumEnforced(t *testing.T) {
	router, _ := newEmployeeRouter()

	bad := employeeForm()
	bad.Set("status", "fired")
	w := doForm(router, http.MethodPost, "/employees", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fired")

	// A case variant of an enumeration member is folded, not rejected.
	variant := employeeForm()
	variant.Set("status", "On-Leave")
	e := createEmployee(t, router, variant)
	assert.Equal(t, "on-leave", e.Status)

	w = doForm(router, http.MethodPut, "/employees/"+e.ID.Hex(), url.Values{"status": {"retired"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doForm(router, http.MethodPut, "/employees/"+e.ID.Hex(), url.Values{"status": {"suspended"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "suspended", updated.Status)
}

func TestEmployeeUpdateRejectsMalformedEmail(t *testing.T) {
	router, _ := newEmployeeRouter()
	e := createEmployee(t, router, employeeForm())

	w := doForm(router, http.MethodPut, "/employees/"+e.ID.Hex(), url.Values{"email": {"not-an-address"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doForm(router, http.MethodGet, "/employees/"+e.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var kept models.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &kept))
	assert.Equal(t, "ama@example.com", kept.Email)

	w = doForm(router, http.MethodPut, "/employees/"+e.ID.Hex(), url.Values{"email": {"Ama.Mensah@example.com"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Employee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "ama.mensah@example.com", updated.Email)
}

func TestEmployeeCreateRequiresValidEmail(t *testing.T) {
	router, _ := newEmployeeRouter()

	form := employeeForm()
	form.Set("email", "garbage")
	w := doForm(router, http.MethodPost, "/employees", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeDuplicateStaffNumber(t *testing.T) {
	router, _ := newEmployeeRouter()
	createEmployee(t, router, employeeForm())

	dup := employeeForm()
	dup.Set("email", "other@example.com")
	dup.Set("staffNumber", "emp-001")
	w := doForm(router, http.MethodPost, "/employees", dup)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate")
}
