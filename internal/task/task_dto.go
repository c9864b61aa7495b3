package task

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	AssignedTo  string `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     string `json:"due_date"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	CompanyID   string `json:"company_id"`
}

// BoardResponse mengelompokkan task per status dengan urutan kolom tetap.
type BoardColumn struct {
	Status string         `json:"status"`
	Tasks  []TaskResponse `json:"tasks"`
}
