package apiclient

import "io"

// User is the backend's user record as it appears on the wire.
// The backend stores users in MongoDB, hence the "_id" key.
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
}

// Material is a published study material.
type Material struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FileURL     string   `json:"fileUrl"`
	Department  string   `json:"department"`
	Semester    int      `json:"semester"`
	UploadedBy  Uploader `json:"uploadedBy"`
}

// Uploader identifies who published a material.
type Uploader struct {
	Name string `json:"name"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Semester   int    `json:"semester"`
}

// MaterialFilter narrows a materials listing. Zero values mean "no filter".
type MaterialFilter struct {
	Keyword    string
	Department string
	Semester   int
}

// UploadInput carries the multipart upload form for a new material.
type UploadInput struct {
	Title       string
	Description string
	Department  string
	Semester    int
	FileName    string
	File        io.Reader
}
