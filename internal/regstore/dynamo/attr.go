package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"gcdashboard/internal/wire"
)

// Conversion between the SDK's AttributeValue union and the wire encoding.
// The wire form mirrors DynamoDB JSON, so the mapping is tag-for-tag. Number
// and null attributes are carried through under their native tags even
// though the record model never reads them; an item must survive a
// get/modify/put cycle without dropping attributes.

func fromAttributeMap(av map[string]types.AttributeValue) wire.Item {
	item := make(wire.Item, len(av))
	for k, v := range av {
		if node := fromAttribute(v); node != nil {
			item[k] = node
		}
	}
	return item
}

func fromAttribute(av types.AttributeValue) wire.Value {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return wire.Value{wire.TagString: v.Value}
	case *types.AttributeValueMemberBOOL:
		return wire.Value{wire.TagBool: v.Value}
	case *types.AttributeValueMemberN:
		return wire.Value{"N": v.Value}
	case *types.AttributeValueMemberNULL:
		return wire.Value{"NULL": v.Value}
	case *types.AttributeValueMemberL:
		list := make([]any, 0, len(v.Value))
		for _, elem := range v.Value {
			if node := fromAttribute(elem); node != nil {
				list = append(list, any(node))
			}
		}
		return wire.Value{wire.TagList: list}
	case *types.AttributeValueMemberM:
		m := make(map[string]any, len(v.Value))
		for k, elem := range v.Value {
			if node := fromAttribute(elem); node != nil {
				m[k] = any(node)
			}
		}
		return wire.Value{wire.TagMap: m}
	default:
		return nil
	}
}

func toAttributeMap(item wire.Item) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		av, err := toAttribute(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}

func toAttribute(v wire.Value) (types.AttributeValue, error) {
	if len(v) != 1 {
		return nil, fmt.Errorf("%w: %d type tags", wire.ErrMalformed, len(v))
	}
	for tag, payload := range v {
		switch tag {
		case wire.TagString:
			s, ok := payload.(string)
			if !ok {
				return nil, fmt.Errorf("%w: S payload is %T", wire.ErrMalformed, payload)
			}
			return &types.AttributeValueMemberS{Value: s}, nil
		case wire.TagBool:
			b, ok := payload.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: BOOL payload is %T", wire.ErrMalformed, payload)
			}
			return &types.AttributeValueMemberBOOL{Value: b}, nil
		case "N":
			n, ok := payload.(string)
			if !ok {
				return nil, fmt.Errorf("%w: N payload is %T", wire.ErrMalformed, payload)
			}
			return &types.AttributeValueMemberN{Value: n}, nil
		case "NULL":
			return &types.AttributeValueMemberNULL{Value: true}, nil
		case wire.TagList:
			elems := v.AsList()
			out := make([]types.AttributeValue, 0, len(elems))
			for _, elem := range elems {
				av, err := toAttribute(elem)
				if err != nil {
					return nil, err
				}
				out = append(out, av)
			}
			return &types.AttributeValueMemberL{Value: out}, nil
		case wire.TagMap:
			nested := v.AsItem()
			out := make(map[string]types.AttributeValue, len(nested))
			for k, elem := range nested {
				av, err := toAttribute(elem)
				if err != nil {
					return nil, err
				}
				out[k] = av
			}
			return &types.AttributeValueMemberM{Value: out}, nil
		default:
			return nil, fmt.Errorf("unsupported attribute tag %q", tag)
		}
	}
	return nil, wire.ErrMalformed // unreachable
}
