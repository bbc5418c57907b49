package general

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"retail_survey/pkg/constant"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Location ...
func Location() *time.Location {
	return time.FixedZone("Asia/Shanghai", 8*60*60)
}

// Now ...
func Now() *time.Time {
	now := time.Now().In(Location())
	return &now
}

func DateNow() string {
	return Now().Format(constant.DATE_LAYOUT)
}

// ParseDate parses a strict YYYY-MM-DD calendar date in the app location.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constant.DATE_LAYOUT, value, Location())
}

func IsValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// DayRange returns the half-open interval [00:00, next day 00:00) of the
// given calendar date. Exact-day filters are built on this everywhere; no
// substring matching on timestamps.
func DayRange(date string) (start time.Time, end time.Time, err error) {
	start, err = ParseDate(date)
	if err != nil {
		return
	}
	end = start.AddDate(0, 0, 1)
	return
}

// DayRangeOf is DayRange for a point in time.
func DayRangeOf(t time.Time) (time.Time, time.Time) {
	t = t.In(Location())
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns the half-open interval [first day 00:00, first day of
// the next month 00:00).
func MonthRange(year int, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, Location())
	return start, start.AddDate(0, 1, 0)
}

// DaysInMonth is leap-year aware.
func DaysInMonth(year int, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, Location()).Day()
}

// RoundFloat rounds to the given number of decimal places.
func RoundFloat(value float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(value*ratio) / ratio
}

func FormatDate(t time.Time) string {
	return t.In(Location()).Format(constant.DATE_LAYOUT)
}

func FormatDateTime(t time.Time) string {
	return t.In(Location()).Format("2006-01-02 15:04:05")
}

func FormatTimeHM(t time.Time) string {
	return t.In(Location()).Format("15:04")
}

// redis login-session helpers

func GenerateRedisKeySurveyorLogin(id int) string {
	return constant.REDIS_KEY_SURVEYOR_LOGIN + strconv.Itoa(id)
}

func GetRedisUUIDArray(dbRedis *redis.Client, key string) []string {
	var data []string
	val, err := dbRedis.Get(context.Background(), key).Result()
	if err != nil {
		return data
	}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		logrus.Error("error unmarshal redis uuid array:", err.Error())
		return nil
	}
	return data
}

func AppendUUIDToRedisArray(dbRedis *redis.Client, key string, uuid string) {
	data := GetRedisUUIDArray(dbRedis, key)
	data = append(data, uuid)
	raw, err := json.Marshal(data)
	if err != nil {
		logrus.Error("error marshal redis uuid array:", err.Error())
		return
	}
	if err := dbRedis.Set(context.Background(), key, string(raw), 0).Err(); err != nil {
		logrus.Error("error set redis uuid array:", err.Error())
	}
}

func RemoveUUIDFromRedisArray(dbRedis *redis.Client, key string, uuid string) {
	data := GetRedisUUIDArray(dbRedis, key)
	kept := make([]string, 0, len(data))
	for _, v := range data {
		if v != uuid {
			kept = append(kept, v)
		}
	}
	raw, err := json.Marshal(kept)
	if err != nil {
		logrus.Error("error marshal redis uuid array:", err.Error())
		return
	}
	if err := dbRedis.Set(context.Background(), key, string(raw), 0).Err(); err != nil {
		logrus.Error("error set redis uuid array:", err.Error())
	}
}

func GenerateRedisKeyResetPasswordIp(ip string) string {
	return fmt.Sprintf(constant.REDIS_REQUEST_IP_KEYS, ip)
}
