package userservice

// User пользователь из UserService (только поля, нужные для бронирования)
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	IsDriver       bool   `json:"is_driver"`
	IsParkingOwner bool   `json:"is_parking_owner"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
