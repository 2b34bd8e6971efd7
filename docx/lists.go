package docx

import "github.com/blwarren/simplifydocx/node"

var (
	wAbstractNum   = node.W("abstractNum")
	wAbstractNumID = node.W("abstractNumId")
	wNum           = node.W("num")
	wLvl           = node.W("lvl")
	wLvlOverride   = node.W("lvlOverride")
)

// Numbering resolves list levels from numbering.xml.
type Numbering struct {
	abstractNums map[string]*node.Node // abstractNumId -> w:abstractNum
	nums         map[string]*node.Node // numId -> w:num
}

// NewNumbering creates a resolver from a parsed w:numbering root, which
// may be nil.
func NewNumbering(root *node.Node) *Numbering {
	nr := &Numbering{
		abstractNums: make(map[string]*node.Node),
		nums:         make(map[string]*node.Node),
	}

	for _, an := range root.ChildrenNamed(wAbstractNum) {
		nr.abstractNums[an.AttrValue(wAbstractNumID)] = an
	}
	for _, num := range root.ChildrenNamed(wNum) {
		nr.nums[num.AttrValue(wNumID)] = num
	}

	return nr
}

// Level returns the w:lvl definition for a numbering instance and level,
// or nil. A level override on the instance wins over the abstract
// definition. An empty level means level 0.
func (nr *Numbering) Level(numID, ilvl string) *node.Node {
	if numID == "" || numID == "0" {
		return nil
	}
	if ilvl == "" {
		ilvl = "0"
	}

	num, ok := nr.nums[numID]
	if !ok {
		return nil
	}

	for _, o := range num.ChildrenNamed(wLvlOverride) {
		if o.AttrValue(wIlvl) != ilvl {
			continue
		}
		if lvl := o.Child(wLvl); lvl != nil {
			return lvl
		}
	}

	abstractNum, ok := nr.abstractNums[num.Child(wAbstractNumID).AttrValue(wVal)]
	if !ok {
		return nil
	}
	for _, lvl := range abstractNum.ChildrenNamed(wLvl) {
		if lvl.AttrValue(wIlvl) == ilvl {
			return lvl
		}
	}
	return nil
}
