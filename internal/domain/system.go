package domain

import (
	"time"
)

type SysConfig struct {
	ID        int64     `json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}

type SysUser struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username" form:"username"`
	Email     string    `gorm:"size:254" json:"email" form:"email"`
	Password  string    `gorm:"size:128" json:"-" form:"-"`
	FirstName string    `gorm:"size:150" json:"first_name" form:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name" form:"last_name"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysUser) TableName() string {
	return "sys_user"
}

// SysUserToken is an opaque bearer credential. A user holds at most one live
// token; login reuses it and logout deletes it.
type SysUserToken struct {
	ID        int64     `json:"id,string"`
	Key       string    `gorm:"uniqueIndex;size:64" json:"key"`
	UserID    int64     `gorm:"uniqueIndex" json:"user_id,string"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (SysUserToken) TableName() string {
	return "sys_user_token"
}
