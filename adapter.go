package tokenauth

import "time"

type Adapter interface {
	GetUserIdByEmail(email string) (string, bool, error)
	GetConnectedUserId(accountId string) (string, error)
	GetAccountId(strategyId string, providerAccountId string) (string, bool, error)
	GetSession(sessionId string) (string, time.Time, error)
	RemoveSession(sessionId string) error

	CreateSession(userId string, expiresAt time.Time) (string, error)
	CreateUser(email string, displayName string, avatar *string) (string, error)
	CreateAccount(userId string, strategyId string, providerAccountId string) (string, error)
}
