package ptr

// Ptr возвращает указатель на значение
// Удобно для заполнения optional-полей литералами
func Ptr[T any](v T) *T {
	return &v
}
