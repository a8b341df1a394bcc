package github

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// IssueParams describes an issue search against a single repository.
type IssueParams struct {
	Owner string `ghparam:"-" yaml:"owner" mapstructure:"owner"`
	Repo  string `ghparam:"-" yaml:"repo" mapstructure:"repo"`
	// ghparam is a custom tag for reflect. Please see buildParams below.
	State string `yaml:"state"`
	// GitHub expects label filters as one comma-separated parameter.
	Labels    []string `ghparam:"labels"`
	Assignee  string   `yaml:"assignee"`
	Creator   string   `yaml:"creator"`
	Since     string   `yaml:"since"`
	PerPage   string   `yaml:"per_page" mapstructure:"per_page"`
	MaxIssues int      `ghparam:"-" yaml:"max_issues" mapstructure:"max_issues"`
}

func (c *Client) listIssues(params *IssueParams) (*Issues, error) {
	if params == nil || params.Owner == "" || params.Repo == "" {
		return nil, fmt.Errorf("search owner and repo are required")
	}

	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}
	if params.State == "" {
		params.State = "open"
	}

	q := buildParams(params)
	endpoint := fmt.Sprintf("%s/repos/%s/%s/issues", c.APIURL, params.Owner, params.Repo)

	items, err := c.GetItems(endpoint, q)
	if err != nil {
		return nil, err
	}

	var issues []*Issue
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &issues,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}

	result := &Issues{Items: issues}
	if params.MaxIssues > 0 && result.Len() > params.MaxIssues {
		result.Items = result.Items[:params.MaxIssues]
	}

	return result, nil
}

func buildParams(params *IssueParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		// Our custom tag is using here.
		key := field.Tag.Get("ghparam")
		if key == "" {
			// Failover to default tag if our tag do not exist.
			key = field.Tag.Get("yaml")
		}
		if key == "" || key == "-" {
			continue
		}

		kind := field.Type.Kind()
		switch kind {
		case reflect.Slice:
			s := reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface()
			switch v := s.(type) {
			case []string:
				if len(v) > 0 {
					q.Set(key, strings.Join(v, ","))
				}
			case []int:
				for _, value := range v {
					q.Add(key, strconv.Itoa(value))
				}
			}

		default:
			value := fmt.Sprintf("%v", reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface())
			if value != "" && value != "0" {
				q.Set(key, value)
			}
		}
	}

	return q
}
