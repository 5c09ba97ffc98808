package domain

// Access predicates. Every externally reachable read or mutation of a
// property-scoped entity goes through one of these before the operation
// touches persisted state. All predicates are pure and deny by default:
// a nil entity or an empty relation never grants access.

// CanAccessProperty is true when the principal added the property, owns it as
// landlord, or lives there as a tenant. tenantIDs are the ids of the
// property's current tenants.
func CanAccessProperty(p Principal, property *Property, tenantIDs []int64) bool {
	if property == nil || p.UserID == 0 {
		return false
	}
	if p.UserID == property.AddedByID || p.UserID == property.LandlordID {
		return true
	}
	for _, id := range tenantIDs {
		if id == p.UserID {
			return true
		}
	}
	return false
}

// CanManageProperty is true for the property's managing agent/PM (addedBy) and
// its landlord. Tenancy alone does not grant management rights.
func CanManageProperty(p Principal, property *Property) bool {
	if property == nil || p.UserID == 0 {
		return false
	}
	return p.UserID == property.AddedByID || p.UserID == property.LandlordID
}

// CanAccessJob covers the job's reporter and assignee in addition to everyone
// who can access the owning property.
func CanAccessJob(p Principal, job *MaintenanceJob, property *Property, tenantIDs []int64) bool {
	if job == nil {
		return false
	}
	if p.UserID != 0 && p.UserID == job.ReportedByID {
		return true
	}
	if job.AssignedToID != nil && p.UserID == *job.AssignedToID {
		return true
	}
	return CanAccessProperty(p, property, tenantIDs)
}

// CanAccessNotice covers issuer, recipient and the owning property's circle.
func CanAccessNotice(p Principal, notice *Notice, property *Property, tenantIDs []int64) bool {
	if notice == nil {
		return false
	}
	if p.UserID != 0 && (p.UserID == notice.IssuedByID || p.UserID == notice.IssuedToID) {
		return true
	}
	return CanAccessProperty(p, property, tenantIDs)
}

// CanAccessDocument covers the uploader and the owning property's circle.
func CanAccessDocument(p Principal, doc *Document, property *Property, tenantIDs []int64) bool {
	if doc == nil {
		return false
	}
	if p.UserID != 0 && p.UserID == doc.UploadedByID {
		return true
	}
	return CanAccessProperty(p, property, tenantIDs)
}

// CanAssignContractors is role-gated, not ownership-gated: only agents,
// landlords and property managers may assign or invite contractors.
func CanAssignContractors(role UserRole) bool {
	return IsManagerRole(role)
}
