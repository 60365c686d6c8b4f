package gallery

// Models lists every table of the gallery schema in migration order.
func Models() []interface{} {
	return []interface{}{&User{}, &Image{}, &UserImage{}}
}
