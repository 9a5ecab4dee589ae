package sec

// CanModify reports whether the user identified by identityID may change or
// delete a course owned by ownerID. Only the owner may do so; a zero identity
// is never authorized.
func CanModify(identityID, ownerID uint64) bool {
	return identityID != 0 && identityID == ownerID
}
