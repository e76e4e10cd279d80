package apiclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhubapp/studyhub-go/pkg/apiclient"
)

func TestClient_ListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/admin", r.URL.Path)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]apiclient.User{
			{ID: "1", Name: "A", Role: "student"},
			{ID: "2", Name: "B", Role: "admin"},
		})
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithTokenSource(staticToken("admin-token")))
	require.NoError(t, err)

	users, err := client.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "B", users[1].Name)
}

func TestClient_UpdateUserRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/u42/role", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "student_admin", body["role"])

		_ = json.NewEncoder(w).Encode(apiclient.User{ID: "u42", Role: "student_admin"})
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithTokenSource(staticToken("admin-token")))
	require.NoError(t, err)

	user, err := client.UpdateUserRole(t.Context(), "u42", "student_admin")
	require.NoError(t, err)
	assert.Equal(t, "student_admin", user.Role)
}

func TestClient_DeleteMaterial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/admin/material/m7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithTokenSource(staticToken("admin-token")))
	require.NoError(t, err)

	require.NoError(t, client.DeleteMaterial(t.Context(), "m7"))
}

func TestClient_DeleteMaterial_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"admin role required"}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithTokenSource(staticToken("student-token")))
	require.NoError(t, err)

	err = client.DeleteMaterial(t.Context(), "m7")
	require.ErrorIs(t, err, apiclient.ErrForbidden)
	assert.Contains(t, err.Error(), "admin role required")
}

func TestClient_UploadMaterial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/material", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Sorting notes", r.FormValue("title"))
		require.Equal(t, "CS", r.FormValue("department"))
		require.Equal(t, "3", r.FormValue("semester"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		require.Equal(t, "notes.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(apiclient.Material{ID: "m1", Title: "Sorting notes"})
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithTokenSource(staticToken("t1")))
	require.NoError(t, err)

	material, err := client.UploadMaterial(t.Context(), apiclient.UploadInput{
		Title:       "Sorting notes",
		Description: "Merge sort and quicksort",
		Department:  "CS",
		Semester:    3,
		FileName:    "notes.pdf",
		File:        strings.NewReader("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", material.ID)
}

func TestClient_UploadMaterial_MissingFile(t *testing.T) {
	client, err := apiclient.New("http://127.0.0.1:0")
	require.NoError(t, err)

	_, err = client.UploadMaterial(t.Context(), apiclient.UploadInput{Title: "x"})

	var ve apiclient.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("file"))
}
