// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Identity
	KeyAuthRequired = "auth.required"

	// Catalog
	KeyCatalogEmpty     = "catalog.empty"
	KeyProductNotFound  = "product.not_found"
	KeyCategoryNotFound = "category.not_found"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemUpdated = "cart.item_updated"
	KeyCartItemRemoved = "cart.item_removed"
	KeyCartCleared     = "cart.cleared"
	KeyCartEmpty       = "cart.empty"

	// Orders
	KeyOrderCreated  = "order.created"
	KeyOrderNotFound = "order.not_found"

	KeyNotificationNotFound = "notification.not_found"

	// Markup
	KeyMarkupUpdated        = "markup.updated"
	KeyMarkupOverrideSet    = "markup.override_set"
	KeyMarkupOverrideRemove = "markup.override_removed"
	KeyMarkupNotFound       = "markup.not_found"

	// Admin
	KeyAdminAccessDenied    = "admin.access_denied"
	KeyAdminProductsCleared = "admin.products_cleared"
	KeyAdminHelp            = "admin.help"
	KeyAdminUnknownCommand  = "admin.unknown_command"

	// Validation
	KeyValidationRequired   = "validation.required"
	KeyValidationInvalid    = "validation.invalid"
	KeyValidationNotNumber  = "validation.not_number"
	KeyValidationOutOfRange = "validation.out_of_range"
	KeyValidationSource     = "validation.invalid_source"

	// Price lists
	KeyPriceListLoaded    = "pricelist.loaded"
	KeyPriceListStructure = "pricelist.bad_structure"
	KeyPriceListFailed    = "pricelist.load_failed"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"

	// Navigation
	KeyNavigationReset = "navigation.reset"
	KeyNavigationTop   = "navigation.top"
)
