// internal/srs/clock.go
package srs

import "time"

// Clock は現在時刻の取得元です。テストでは固定時刻を注入します。
type Clock interface {
	Now() time.Time
}

// ClockFunc は関数を Clock として使うためのアダプタです。
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock は実時間を返します。
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock は常に t を返す Clock を作ります。
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
