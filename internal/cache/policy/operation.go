package policy

// Operation — операция кэша; набор фиксирован, поэтому счётчики ошибок живут в массиве.
type Operation int

const (
	OpGet Operation = iota
	OpGetWithTimeout
	OpPut
	OpPutWithTimeout
	OpPutWithTTL
	OpReplace
	OpRemove
	OpContains
	OpEvict
	OpHealthCheck
	OpWarmUp
	// OpFindWithFallback — только решение "кэш или БД" в составном чтении; ошибок не копит,
	// поэтому обход кэша для него определяет автомат.
	OpFindWithFallback

	opCount
)

var opNames = [opCount]string{
	OpGet:              "get",
	OpGetWithTimeout:   "get_with_timeout",
	OpPut:              "put",
	OpPutWithTimeout:   "put_with_timeout",
	OpPutWithTTL:       "put_with_ttl",
	OpReplace:          "replace",
	OpRemove:           "remove",
	OpContains:         "contains",
	OpEvict:            "evict",
	OpHealthCheck:      "health_check",
	OpWarmUp:           "warm_up",
	OpFindWithFallback: "find_with_fallback",
}

func (o Operation) String() string {
	if o < 0 || o >= opCount {
		return "unknown"
	}
	return opNames[o]
}

// Operations — все операции в порядке объявления.
func Operations() []Operation {
	ops := make([]Operation, opCount)
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}
