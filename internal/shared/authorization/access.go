package authorization

// CanAccessResourceByOwnerID reports whether the caller may see a resource
// owned by resourceOwnerID. Privileged roles see everything.
func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsPrivileged() {
		return true
	}
	return userID == resourceOwnerID
}
