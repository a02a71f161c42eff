package staffdirectory

// Staff модель сотрудника из справочника персонала
type Staff struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// ErrorResponse модель ошибки от справочника персонала
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
