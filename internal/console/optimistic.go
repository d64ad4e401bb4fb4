// internal/console/optimistic.go
package console

// Attempt gói một lần ghi lạc quan lên state hiển thị: giá trị mới được áp
// dụng ngay trước khi server xác nhận, giá trị cũ được giữ lại để hoàn tác.
// Cùng một protocol dùng cho cả đổi trạng thái lẫn đổi vị trí.
type Attempt[T any] struct {
	prev  T
	apply func(T)
}

// BeginAttempt ghi giá trị mới vào state hiển thị và giữ lại giá trị trước đó.
func BeginAttempt[T any](current, next T, apply func(T)) *Attempt[T] {
	apply(next)
	return &Attempt[T]{prev: current, apply: apply}
}

// Revert khôi phục giá trị đã giữ sau khi request thất bại.
func (a *Attempt[T]) Revert() {
	a.apply(a.prev)
}
