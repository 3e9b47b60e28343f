package files

import (
	"log"

	"github.com/EgorLis/ipfs-drive/internal/domain"
	"github.com/EgorLis/ipfs-drive/internal/vault"
)

type Handler struct {
	Log   *log.Logger
	Vault *vault.Service
	Cache domain.Cache

	ListTTL int // секунд
}
