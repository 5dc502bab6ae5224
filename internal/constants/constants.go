package constants

// 尺码枚举（按展示顺序）
var SizeLabels = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL"}

// 客户分群枚举
var Segments = []string{"Corporate", "Retail", "Wholesale", "Online"}

// 付款方式枚举
var WalletMethods = []string{"Cash", "Bank Transfer", "Credit Card", "E-Wallet"}

// 明细集合名称
const (
	CollectionAdditions  = "additions"
	CollectionDeductions = "deductions"
)

// 上传场景
const (
	UploadSceneAttachment = "attachment"
	UploadSceneDesign     = "design"
)

// ID 生成策略
const (
	IDStrategySequence = "sequence"
	IDStrategyUUID     = "uuid"
)

// 队列与任务
const (
	QueueDefault             = "default"
	TaskSalesOrderSubmitted  = "sales_order:submitted"
	DefaultCurrencyPrefix    = "Rp"
	DefaultDisplayLocale     = "id-ID"
	DefaultFormSessionTTLMin = 120
)

// IsSizeLabel 判断是否为合法尺码
func IsSizeLabel(size string) bool {
	for _, label := range SizeLabels {
		if label == size {
			return true
		}
	}
	return false
}
