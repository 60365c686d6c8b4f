package catalogue

// Models lists every table of the catalogue schema in migration order.
func Models() []interface{} {
	return []interface{}{&User{}, &Profile{}, &Genre{}, &Developer{}, &Platform{}, &Game{}}
}
