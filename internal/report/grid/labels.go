package grid

const (
	sheetTitle   = "Малина"
	titlePrefix  = "Звіт прийому малини"
	clientPrefix = "від клієнта"

	labelCollected = "Зібрано (кг)"
	labelSpent     = "Витрачено (грн)"
	labelMaxPrice  = "Максимальна (грн/кг)"
	labelMinPrice  = "Мінімальна (грн/кг)"
	labelAvgPrice  = "Середня (грн/кг)"
	labelSold      = "Продано (кг)"
	labelEarned    = "Зароблено (грн)"
	labelRemaining = "Залишок (кг)"
	labelProfit    = "Прибуток (грн)"

	headerDate      = "Дата"
	headerClient    = "Клієнт"
	headerReceipts  = "Прийоми"
	headerGeneral   = "Загальні"
	headerWeight    = "Вага (кг)"
	headerUnitPrice = "Ціна за кг (грн)"
	headerSum       = "Сума (грн)"

	dateLayout = "02.01.2006"
)
