// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PasswordHistoryEntry is a retired password of one account, kept solely to
// prevent reuse. Each entry carries its own salt and iteration count.
type PasswordHistoryEntry struct {
	ID         int64     `json:"-"`
	AccountID  int64     `json:"-"`
	Hash       []byte    `json:"-"`
	Salt       []byte    `json:"-"`
	Iterations int       `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with
// PasswordHistoryEntry.
func (e PasswordHistoryEntry) TableName() string {
	return "password_history"
}
