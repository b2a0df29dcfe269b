package policy

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheUnavailable — автомат открыт, операция не выполнялась.
	ErrCacheUnavailable = errors.New("cache unavailable: circuit breaker open")
	// ErrCacheOperation — сбой отдельной операции хранилища.
	ErrCacheOperation = errors.New("cache operation failed")
	// ErrCacheTimeout — операция не уложилась в дедлайн.
	ErrCacheTimeout = fmt.Errorf("%w: timeout", ErrCacheOperation)
	// ErrNilOrder — нарушение контракта вызывающей стороны, не сбой кэша.
	ErrNilOrder = errors.New("order must not be nil")
)
