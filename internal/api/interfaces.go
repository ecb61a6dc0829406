package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/limbo/regimen/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(account *entity.Account) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
}
