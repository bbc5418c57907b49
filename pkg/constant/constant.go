package constant

const (
	TASK_STATUS_ACTIVE    = "active"
	TASK_STATUS_CANCELLED = "cancelled"
	TASK_STATUS_COMPLETED = "completed"

	CATEGORY_LEVEL1_GROCERY = "食品杂货"
	CATEGORY_LEVEL1_FRESH   = "生鲜"
	CATEGORY_OTHER_LABEL    = "其他"

	SURVEYOR_STATS_TOP_N = 5

	DEFAULT_TREND_DAYS        = 7
	DEFAULT_DISTRIBUTION_DAYS = 7

	DATE_LAYOUT = "2006-01-02"

	REDIS_KEY_SURVEYOR_LOGIN   = "login_token_surveyor_"
	REDIS_KEY_AUTO_LOGOUT      = "surveyor_auto_logout"
	REDIS_REQUEST_IP_KEYS      = "reset-password:ip:%s"
	REDIS_REQUEST_MAX_ATTEMPTS = 5
	REDIS_REQUEST_IP_EXPIRE    = 240

	PHOTO_FOLDER = "survey-photos"
)

var (
	BASE_URL string = ""
)
