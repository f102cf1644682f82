package model

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	GENERAL = iota
	ADMIN
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"column:username;size:255;uniqueIndex" json:"username"`
	PwdHash  string `gorm:"column:pwd_hash;size:64" json:"-"`
	Salt     string `gorm:"column:salt;size:32" json:"-"`
	Role     int    `gorm:"column:role" json:"role"`
	Disabled bool   `gorm:"column:disabled" json:"disabled"`
}

func (u *User) IsAdmin() bool {
	return u.Role == ADMIN
}

func (u *User) ValidatePassword(password string) bool {
	return HashPwd(password, u.Salt) == u.PwdHash
}

func (u *User) SetPassword(password string) {
	u.PwdHash = HashPwd(password, u.Salt)
}

func HashPwd(password, salt string) string {
	sum := sha256.Sum256([]byte(password + "-" + salt))
	return hex.EncodeToString(sum[:])
}
