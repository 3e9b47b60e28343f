package domain

import "context"

// Аутентифицированный пользователь в контексте HTTP-запроса.
// Ключ — пустая структура: коллизии с чужими значениями исключены типом.
type userKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func UserFromCtx(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok
}
