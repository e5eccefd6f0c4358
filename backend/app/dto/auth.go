package dto

type RegisterForm struct {
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name" validate:"required,max=30"`
	Email     string `form:"email" validate:"required,email,max=50"`
	Username  string `form:"username" validate:"required,max=20"`
	Password  string `form:"password" validate:"required"`
}

func (f *RegisterForm) normalize() {
	f.FirstName = trim(f.FirstName)
	f.LastName = trim(f.LastName)
	f.Email = trim(f.Email)
	f.Username = trim(f.Username)
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) normalize() { f.Username = trim(f.Username) }
