package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// ListMaterials returns published materials, optionally filtered by
// keyword, department and semester.
func (c *Client) ListMaterials(ctx context.Context, filter MaterialFilter) ([]Material, error) {
	query := map[string]string{
		"keyword":    filter.Keyword,
		"department": filter.Department,
	}
	if filter.Semester > 0 {
		query["semester"] = strconv.Itoa(filter.Semester)
	}

	var materials []Material
	if err := c.do(ctx, request{
		method:        http.MethodGet,
		path:          "/materials",
		query:         query,
		authenticated: true,
	}, &materials); err != nil {
		return nil, err
	}

	return materials, nil
}

// UploadMaterial publishes a new material as a multipart form. Requires
// the student_admin or admin role server-side.
func (c *Client) UploadMaterial(ctx context.Context, input UploadInput) (Material, error) {
	if input.File == nil {
		ve := NewValidationError()
		ve.Add("file", "file is required")
		return Material{}, ve
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"department":  input.Department,
		"semester":    strconv.Itoa(input.Semester),
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return Material{}, fmt.Errorf("apiclient: write form field %q: %w", name, err)
		}
	}

	fileName := input.FileName
	if fileName == "" {
		fileName = "material"
	}
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return Material{}, fmt.Errorf("apiclient: create form file: %w", err)
	}
	if _, err := io.Copy(part, input.File); err != nil {
		return Material{}, errors.Join(errors.New("apiclient: read upload file"), err)
	}
	if err := form.Close(); err != nil {
		return Material{}, fmt.Errorf("apiclient: finalize form: %w", err)
	}

	var material Material
	if err := c.do(ctx, request{
		method:        http.MethodPost,
		path:          "/admin/material",
		body:          &buf,
		contentType:   form.FormDataContentType(),
		authenticated: true,
	}, &material); err != nil {
		return Material{}, err
	}

	return material, nil
}
