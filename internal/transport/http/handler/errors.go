package handler

const (
	errInternalServer = "Internal server error"

	errUserExists        = "User already exists"
	errInvalidCreds      = "Invalid credentials"
	errUserNotFound      = "User not found"
	errIncorrectPassword = "Incorrect old password"
	errMissingFields     = "Missing required fields"

	errNoRefreshToken      = "No refresh token provided"
	errInvalidRefreshToken = "Invalid refresh token"
	errTokenMissing        = "Token missing"
	errTokenInvalid        = "Invalid or expired token"

	errInvalidIDs       = "Invalid userId or addressId"
	errAddressNotFound  = "Address not found"
	errDuplicateAddress = "Duplicate address detected."

	errInvalidProduct  = "Invalid Product Data"
	errMissingImages   = "Product must include images."
	errAlreadySaved    = "Product already saved."
	errSavedItemAbsent = "Product not found in saved items."
)
