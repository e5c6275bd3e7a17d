package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StaffSessionKey returns the cache key for a staff member's login session.
func (r *CacheKeyStruct) StaffSessionKey(staffID int) string {
	return fmt.Sprintf("login:staff:%d", staffID)
}

// AttendanceMonitorChannel returns the Redis PubSub channel carrying live
// attendance capture events.
func (r *CacheKeyStruct) AttendanceMonitorChannel() string {
	return "attendance:monitor"
}

var CacheKey = NewCacheKeyStruct()
