package entities

// Caller - аутентифицированный пользователь, от имени которого выполняется операция.
// Нулевое значение означает отсутствие аутентификации.
type Caller struct {
	ID int64
}

// Valid сообщает, что вызывающий аутентифицирован.
func (c Caller) Valid() bool {
	return c.ID > 0
}
