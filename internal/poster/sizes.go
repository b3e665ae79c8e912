package poster

// Size is a named pixel width/height pair representing a target output format.
type Size struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DefaultSizeKey is used when the caller omits the size or supplies an
// unknown key.
const DefaultSizeKey = "a4"

// sizes is the fixed size mapping in display order.
var sizes = []Size{
	{Key: "a4", Name: "A4 直式", Width: 2480, Height: 3508},
	{Key: "a4-landscape", Name: "A4 橫式", Width: 3508, Height: 2480},
	{Key: "instagram", Name: "Instagram 貼文", Width: 1080, Height: 1080},
	{Key: "instagram-story", Name: "Instagram 限時動態", Width: 1080, Height: 1920},
	{Key: "facebook-cover", Name: "Facebook 封面", Width: 1640, Height: 856},
}

// Sizes returns all size definitions in display order.
func Sizes() []Size {
	out := make([]Size, len(sizes))
	copy(out, sizes)
	return out
}

// ResolveSize maps a size key to its definition. Empty or unknown keys fall
// back to the default entry.
func ResolveSize(key string) Size {
	for _, size := range sizes {
		if size.Key == key {
			return size
		}
	}
	return ResolveSize(DefaultSizeKey)
}
