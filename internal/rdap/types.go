package rdap

// UnknownField is reported when an RDAP document exists but omits a value.
const UnknownField = "Unknown"

// domainDocument is the subset of an RDAP domain response we consume.
// See RFC 9083 for the full object model.
type domainDocument struct {
	Handle   string   `json:"handle"`
	LDHName  string   `json:"ldhName"`
	Status   []string `json:"status"`
	Entities []entity `json:"entities"`
	Events   []event  `json:"events"`
}

type entity struct {
	Roles      []string `json:"roles"`
	VCardArray []any    `json:"vcardArray"`
}

type event struct {
	Action string `json:"eventAction"`
	Date   string `json:"eventDate"`
}

// Registration is the distilled registration data for a domain.
type Registration struct {
	Domain           string   `json:"domain"`
	Handle           string   `json:"handle,omitempty"`
	Registrar        string   `json:"registrar"`
	RegistrationDate string   `json:"registration_date"`
	ExpirationDate   string   `json:"expiration_date"`
	Statuses         []string `json:"statuses,omitempty"`
}

// registration distills a raw RDAP document into a Registration.
// Fields the registry omitted come back as UnknownField.
func (d *domainDocument) registration(domain string) *Registration {
	reg := &Registration{
		Domain:           domain,
		Handle:           d.Handle,
		Registrar:        UnknownField,
		RegistrationDate: UnknownField,
		ExpirationDate:   UnknownField,
		Statuses:         d.Status,
	}

	for _, ent := range d.Entities {
		if !hasRole(ent.Roles, "registrar") {
			continue
		}
		if name := vcardName(ent.VCardArray); name != "" {
			reg.Registrar = name
			break
		}
	}

	for _, ev := range d.Events {
		switch ev.Action {
		case "registration":
			if ev.Date != "" {
				reg.RegistrationDate = ev.Date
			}
		case "expiration":
			if ev.Date != "" {
				reg.ExpirationDate = ev.Date
			}
		}
	}

	return reg
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

// vcardName pulls the registrar name out of a jCard (RFC 7095) array.
// The shape is ["vcard", [["fn", {}, "text", "Example Registrar"], ...]];
// we accept either the "fn" or "org" property, whichever carries a value.
func vcardName(vcard []any) string {
	if len(vcard) < 2 {
		return ""
	}
	props, ok := vcard[1].([]any)
	if !ok {
		return ""
	}
	for _, p := range props {
		entry, ok := p.([]any)
		if !ok || len(entry) < 4 {
			continue
		}
		key, ok := entry[0].(string)
		if !ok || (key != "fn" && key != "org") {
			continue
		}
		if val, ok := entry[3].(string); ok && val != "" {
			return val
		}
	}
	return ""
}
