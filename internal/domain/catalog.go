package domain

import "time"

// Staff мастер салона
type Staff struct {
	ID       int64
	Name     string
	Role     string
	IsActive bool
}

// Service услуга из каталога
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	IsActive        bool
}

// Selected превращает услугу каталога в позицию заказа
func (s *Service) Selected() SelectedService {
	return SelectedService{
		ServiceID:       s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
	}
}

// Customer клиент
type Customer struct {
	ID        int64
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
}
