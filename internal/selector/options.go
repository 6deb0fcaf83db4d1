package selector

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ensigniasec/regionpick/internal/config"
	"github.com/ensigniasec/regionpick/internal/validate"
)

// ErrInvalidOptions is returned for option trees that fail validation.
var ErrInvalidOptions = errors.New("invalid option tree")

// Option is a node of the option tree.
type Option struct {
	Value    string   `json:"value" yaml:"value" validate:"required"`
	Label    string   `json:"label" yaml:"label" validate:"required"`
	Children []Option `json:"children,omitempty" yaml:"children,omitempty" validate:"omitempty,dive"`
}

func leaf(value, label string) Option { return Option{Value: value, Label: label} }

// DefaultOptions returns the built-in tree.
func DefaultOptions() []Option {
	return []Option{
		{Value: "beijing", Label: "北京市", Children: []Option{
			leaf("beijing-dongcheng", "东城区"),
			leaf("beijing-xicheng", "西城区"),
			leaf("beijing-chaoyang", "朝阳区"),
			leaf("beijing-haidian", "海淀区"),
		}},
		{Value: "shanghai", Label: "上海市", Children: []Option{
			leaf("shanghai-huangpu", "黄浦区"),
			leaf("shanghai-xuhui", "徐汇区"),
			leaf("shanghai-changning", "长宁区"),
			leaf("shanghai-jingan", "静安区"),
		}},
		{Value: "guangzhou", Label: "广州市", Children: []Option{
			leaf("guangzhou-tianhe", "天河区"),
			leaf("guangzhou-yuexiu", "越秀区"),
			leaf("guangzhou-liwan", "荔湾区"),
			leaf("guangzhou-haizhu", "海珠区"),
		}},
	}
}

// FetchedOptions returns the tree the simulated fetch installs by default.
func FetchedOptions() []Option {
	return []Option{
		{Value: "shenzhen", Label: "深圳市", Children: []Option{
			leaf("shenzhen-futian", "福田区"),
			leaf("shenzhen-luohu", "罗湖区"),
			leaf("shenzhen-nanshan", "南山区"),
			leaf("shenzhen-baoan", "宝安区"),
		}},
	}
}

// LoadOptionsFile reads an option tree from a YAML or JSON file.
// The file holds a top-level list of options.
func LoadOptionsFile(path string) ([]Option, error) {
	var tree []Option
	if err := config.DecodeFile(path, &tree); err != nil {
		return nil, err
	}
	if err := Validate(tree); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Validate checks that every node has a value and label and that sibling values are unique.
func Validate(tree []Option) error {
	if len(tree) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidOptions)
	}
	if err := validate.Slice(tree); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, validate.Describe(err))
	}
	return uniqueValues(tree, "")
}

func uniqueValues(nodes []Option, parent string) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.Value]; dup {
			return fmt.Errorf("%w: duplicate value %q under %q", ErrInvalidOptions, n.Value, parent)
		}
		seen[n.Value] = struct{}{}
		if err := uniqueValues(n.Children, n.Value); err != nil {
			return err
		}
	}
	return nil
}

// Labels resolves the display labels along path. Keys that are not in the
// tree are skipped, as are any keys below them.
func Labels(tree []Option, path []string) []string {
	labels := make([]string, 0, len(path))
	nodes := tree
	for _, key := range path {
		i := slices.IndexFunc(nodes, func(o Option) bool { return o.Value == key })
		if i < 0 {
			break
		}
		labels = append(labels, nodes[i].Label)
		nodes = nodes[i].Children
	}
	return labels
}

// Find returns the children reached by following path, and whether the whole path exists.
func Find(tree []Option, path []string) ([]Option, bool) {
	nodes := tree
	for _, key := range path {
		i := slices.IndexFunc(nodes, func(o Option) bool { return o.Value == key })
		if i < 0 {
			return nil, false
		}
		nodes = nodes[i].Children
	}
	return nodes, true
}

// Leaves lists every root-to-leaf path of the tree.
func Leaves(tree []Option) [][]Option {
	var out [][]Option
	var walk func(prefix []Option, nodes []Option)
	walk = func(prefix []Option, nodes []Option) {
		for _, n := range nodes {
			p := append(slices.Clone(prefix), n)
			if len(n.Children) == 0 {
				out = append(out, p)
				continue
			}
			walk(p, n.Children)
		}
	}
	walk(nil, tree)
	return out
}

func cloneTree(tree []Option) []Option {
	if tree == nil {
		return nil
	}
	out := make([]Option, len(tree))
	for i, n := range tree {
		out[i] = Option{Value: n.Value, Label: n.Label, Children: cloneTree(n.Children)}
	}
	return out
}
