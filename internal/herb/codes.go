package herb

// DefaultCodes maps herb slugs to GatherMate2 node ids (GatherMate2 herb
// node table, The War Within herbs).
var DefaultCodes = map[string]int{
	"mycobloom":                     1439,
	"lush-mycobloom":                1440,
	"irradiated-mycobloom":          1441,
	"sporefused-mycobloom":          1442,
	"sporelusive-mycobloom":         1443,
	"crystallized-mycobloom":        1444,
	"altered-mycobloom":             1445,
	"camouflaged-mycobloom":         1446,
	"blessing-blossom":              1447,
	"lush-blessing-blossom":         1448,
	"irradiated-blessing-blossom":   1449,
	"sporefused-blessing-blossom":   1450,
	"sporelusive-blessing-blossom":  1451,
	"crystallized-blessing-blossom": 1452,
	"altered-blessing-blossom":      1453,
	"camouflaged-blessing-blossom":  1454,
	"luredrop":                      1455,
	"lush-luredrop":                 1456,
	"irradiated-luredrop":           1457,
	"sporefused-luredrop":           1458,
	"sporelusive-luredrop":          1459,
	"crystallized-luredrop":         1460,
	"altered-luredrop":              1461,
	"camouflaged-luredrop":          1462,
	"orbinid":                       1463,
	"lush-orbinid":                  1464,
	"irradiated-orbinid":            1465,
	"sporefused-orbinid":            1466,
	"sporelusive-orbinid":           1467,
	"crystallized-orbinid":          1468,
	"altered-orbinid":               1469,
	"camouflaged-orbinid":           1470,
	"arathors-spear":                1471,
	"lush-arathors-spear":           1472,
	"irradiated-arathors-spear":     1473,
	"sporefused-arathors-spear":     1474,
	"sporelusive-arathors-spear":    1475,
	"crystallized-arathors-spear":   1476,
	"altered-arathors-spear":        1477,
	"camouflaged-arathors-spear":    1478,
}

// Resolver maps herb names to GatherMate2 node ids by exact slug match
type Resolver struct {
	codes map[string]int
}

// NewResolver creates a Resolver over codes. A nil map resolves nothing.
func NewResolver(codes map[string]int) *Resolver {
	return &Resolver{codes: codes}
}

// DefaultResolver returns a Resolver over DefaultCodes.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultCodes)
}

// Lookup slugifies name and returns its node id. A miss is expected for
// herbs added to the game after the table was last updated.
func (r *Resolver) Lookup(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	code, ok := r.codes[Slugify(name)]
	return code, ok
}
