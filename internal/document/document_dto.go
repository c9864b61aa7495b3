package document

// UploadDocumentRequest dibaca dari form-data, file menyusul lewat c.FormFile.
type UploadDocumentRequest struct {
	Title    string `form:"title" binding:"required"`
	Category string `form:"category"`
}

type AssignmentPayload struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	CanView     bool   `json:"can_view"`
	CanDownload bool   `json:"can_download"`
}

type UpdateAssignmentsRequest struct {
	Assignments []AssignmentPayload `json:"assignments" binding:"required,dive"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	UploadedBy  string `json:"uploaded_by,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompanyID   string `json:"company_id"`
}

type AssignmentResponse struct {
	EmployeeID  string `json:"employee_id"`
	CanView     bool   `json:"can_view"`
	CanDownload bool   `json:"can_download"`
}

type DocumentDetailResponse struct {
	DocumentResponse
	Assignments []AssignmentResponse `json:"assignments"`
}

type DownloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in_seconds"`
}
