package i18n

var messages = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":            "Invalid request parameters",
		"error.internal":               "Internal server error",
		"error.form_not_found":         "Sales order form not found or expired",
		"error.form_limit_reached":     "Too many open sales order forms, please try again later",
		"error.field_unknown":          "Unknown form field",
		"error.field_read_only":        "This field is read-only",
		"error.value_invalid":          "Invalid value for this field",
		"error.variant_not_found":      "Product variant not found",
		"error.line_item_not_found":    "Line item not found",
		"error.size_invalid":           "Unsupported size",
		"error.collection_invalid":     "Unknown line item collection",
		"error.upload_missing":         "Please choose a file to upload",
		"error.upload_invalid":         "File type or size is not allowed",
		"error.upload_failed":          "File upload failed",
		"error.validation_failed":      "Please complete the required fields",
		"error.reference_fetch_failed": "Failed to load reference data",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limit service unavailable",
		"result.empty":                 "No order data yet. Please submit the form first.",
		"validation.required":          "%s is required",
		"validation.customer":          "Customer must be selected",
		"validation.address":           "Address must be filled in",
		"validation.order_name":        "Order Name must be filled in",
		"validation.product":           "Product must be selected",
		"validation.segment":           "Segment must be selected",
		"validation.date":              "Date must be filled in",
		"validation.due_payment":       "Due Payment is required",
		"validation.spk_date":          "SPK Date is required",
		"validation.product_note":      "Product Note must be filled in",
	},
	LocaleZhCN: {
		"error.bad_request":            "请求参数错误",
		"error.internal":               "服务器内部错误",
		"error.form_not_found":         "销售订单表单不存在或已过期",
		"error.form_limit_reached":     "打开的表单过多，请稍后再试",
		"error.field_unknown":          "未知的表单字段",
		"error.field_read_only":        "该字段为只读",
		"error.value_invalid":          "字段值无效",
		"error.variant_not_found":      "款式不存在",
		"error.line_item_not_found":    "费用明细不存在",
		"error.size_invalid":           "不支持的尺码",
		"error.collection_invalid":     "未知的明细类型",
		"error.upload_missing":         "请选择要上传的文件",
		"error.upload_invalid":         "文件类型或大小不被允许",
		"error.upload_failed":          "文件上传失败",
		"error.validation_failed":      "请填写必填字段",
		"error.reference_fetch_failed": "获取参考数据失败",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用",
		"result.empty":                 "暂无订单数据，请先提交表单。",
		"validation.required":          "%s 为必填项",
		"validation.customer":          "请选择客户",
		"validation.address":           "地址不能为空",
		"validation.order_name":        "订单名称不能为空",
		"validation.product":           "请选择商品",
		"validation.segment":           "请选择客户分群",
		"validation.date":              "日期不能为空",
		"validation.due_payment":       "付款截止日期不能为空",
		"validation.spk_date":          "SPK 日期不能为空",
		"validation.product_note":      "商品备注不能为空",
	},
	LocaleIDID: {
		"error.bad_request":            "Parameter permintaan tidak valid",
		"error.internal":               "Terjadi kesalahan pada server",
		"error.form_not_found":         "Form sales order tidak ditemukan atau sudah kedaluwarsa",
		"error.form_limit_reached":     "Terlalu banyak form terbuka, silakan coba lagi nanti",
		"error.field_unknown":          "Field form tidak dikenal",
		"error.field_read_only":        "Field ini hanya dapat dibaca",
		"error.value_invalid":          "Nilai field tidak valid",
		"error.variant_not_found":      "Varian produk tidak ditemukan",
		"error.line_item_not_found":    "Item tidak ditemukan",
		"error.size_invalid":           "Ukuran tidak didukung",
		"error.collection_invalid":     "Jenis item tidak dikenal",
		"error.upload_missing":         "Silakan pilih file untuk diunggah",
		"error.upload_invalid":         "Jenis atau ukuran file tidak diizinkan",
		"error.upload_failed":          "Gagal mengunggah file",
		"error.validation_failed":      "Silakan lengkapi field yang wajib diisi",
		"error.reference_fetch_failed": "Gagal memuat data referensi",
		"error.rate_limited":           "Terlalu banyak permintaan, coba lagi dalam %d detik",
		"error.rate_limit_unavailable": "Layanan pembatas permintaan tidak tersedia",
		"result.empty":                 "Belum ada data order. Silakan submit form terlebih dahulu.",
		"validation.required":          "%s wajib diisi",
		"validation.customer":          "Customer harus dipilih",
		"validation.address":           "Alamat harus diisi",
		"validation.order_name":        "Nama order harus diisi",
		"validation.product":           "Produk harus dipilih",
		"validation.segment":           "Segmen harus dipilih",
		"validation.date":              "Tanggal harus diisi",
		"validation.due_payment":       "Tanggal jatuh tempo harus diisi",
		"validation.spk_date":          "Tanggal SPK harus diisi",
		"validation.product_note":      "Catatan produk harus diisi",
	},
}
