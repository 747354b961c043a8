package auth

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`

	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Username   string `json:"username"`
}
