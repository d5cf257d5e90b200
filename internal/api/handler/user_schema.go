package handler

type createUserRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,numeric,min=10,max=11"`
	Role        string `json:"role" validate:"required,oneof=admin customer shop"`
}

type updateUserRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,numeric,min=10,max=11"`
	Role        string `json:"role" validate:"required,oneof=admin customer shop"`
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
}

type updateCoverRequest struct {
	CoverURL string `json:"coverUrl" validate:"required,url"`
}

type banResponse struct {
	Banned bool `json:"banned"`
}

type listUsersResponse struct {
	TotalUsers int             `json:"totalUsers"`
	Users      []*userResponse `json:"users"`
}
