package rule

import "fwsim/domain/entity"

type Repository interface {
	Load() (*entity.Rules, error)
	Save(rules *entity.Rules) error
}
