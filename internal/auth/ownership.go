package auth

// Owns reports whether requesterID may mutate a resource owned by ownerID.
// Every todo mutation checks existence first, then Owns, in that order.
func Owns(ownerID, requesterID int64) bool {
	return ownerID == requesterID
}
