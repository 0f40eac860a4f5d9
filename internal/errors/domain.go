package errors

// Client errors
var (
	ErrClientNotFound          = NotFound("Client not found")
	ErrNoClientProfile         = NotFound("No client profile found for current user")
	ErrClientForCurrentUser    = NotFound("Client not found for current user")
	ErrParentNotFound          = NotFound("Parent client not found")
	ErrGuardianNotFound        = NotFound("Guardian client not found")
	ErrClientHasChildren       = BadRequest("Cannot delete client with children. Update or remove children first.")
	ErrClientAccessDenied      = Forbidden("You don't have permission to access this client")
	ErrClientAlreadyLinked     = BadRequest("A client profile already exists for this user")
	ErrGroupIDRequired         = Unprocessable("group_id query parameter is required")
	ErrInvalidGroupID          = Unprocessable("Invalid group_id format")
	ErrInvalidClientID         = Unprocessable("Invalid client_id format")
	ErrMissingClientID         = Unprocessable("Missing client_id in request body")
	ErrClientGroupAccessDenied = Forbidden("You don't have permission to manage clients of this group")
)

// Group errors
var (
	ErrGroupNotFound       = NotFound("Group not found")
	ErrClientGroupNotFound = NotFound("Client group not found")
	ErrNoGroup             = BadRequest("Client doesn't belong to any group")
	ErrNotGroupMember      = BadRequest("Client is not a member of this group")
	ErrGroupAdminRequired  = Forbidden("Only group admins can manage this group")
)

// QR code errors
var (
	ErrQRNotFound       = NotFound("QR code not found")
	ErrNoActiveQR       = NotFound("No active QR code found for this client")
	ErrQRGenerateDenied = Forbidden("You don't have permission to generate QR codes for this client group")
	ErrQRAccessDenied   = Forbidden("You don't have permission to view this QR code")
	ErrQRNotPending     = BadRequest("QR code has already been used for check-in")
	ErrQRNotInUse       = BadRequest("QR code is not checked in")
	ErrStaffRequired    = Forbidden("Only staff can perform this action")
)

// Plan errors
var (
	ErrPlanNotFound          = NotFound("Plan not found")
	ErrPlanInstanceNotFound  = NotFound("Plan instance not found or you don't have access to it")
	ErrPlanInstanceForbidden = Forbidden("You don't have permission to create plan instances for this group")
	ErrInvalidPlanDates      = Unprocessable("end_date must be after start_date")
	ErrPlanSlugTaken         = BadRequest("A plan with this name already exists")
)

// Payment errors
var (
	ErrMissingPaymentFields = Unprocessable("Missing required fields")
	ErrInvalidPaymentMethod = Unprocessable("Invalid payment method")
	ErrPaymentNotFound      = NotFound("Payment not found")
	ErrVisitNotFound        = NotFound("Visit not found")
	ErrVisitAlreadyPaid     = BadRequest("Visit has already been paid")
	ErrInvalidSignature     = BadRequest("Invalid payment signature")
	ErrAmountExceedsBalance = Unprocessable("Amount exceeds the plan instance outstanding balance")
)
