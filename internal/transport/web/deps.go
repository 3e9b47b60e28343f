package web

import "github.com/EgorLis/ipfs-drive/internal/domain"

type Repos struct {
	Users   domain.UsersRepo
	Uploads domain.UploadsRepo
}

type AuthDeps struct {
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}
