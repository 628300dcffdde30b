package user

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

// ServiceInterface is the subset other feature packages depend on.
type ServiceInterface interface {
	GetByID(id int) (User, error)
	GetByNormalizedEmail(email string) (User, error)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// GetByNormalizedEmail looks a profile up by the trimmed, lower-cased address.
func (s *Service) GetByNormalizedEmail(email string) (User, error) {
	return s.repo.GetByEmail(NormalizeEmail(email))
}

func (s *Service) Register(user User) (User, error) {
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.Password = string(hashed)
	return s.repo.Create(user)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) UpdateProfile(id int, update User) (User, error) {
	if update.Password != "" && !looksLikeBcrypt(update.Password) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		update.Password = string(hashed)
	}
	return s.repo.Update(id, update)
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
