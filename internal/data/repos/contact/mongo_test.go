package contact

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	dbpkg "github.com/yungbote/contactbook-backend/internal/data/db"
	types "github.com/yungbote/contactbook-backend/internal/domain"
)

func stageNames(p []bson.D) []string {
	out := make([]string, 0, len(p))
	for _, st := range p {
		out = append(out, st[0].Key)
	}
	return out
}

func stage(t *testing.T, p []bson.D, name string) bson.D {
	t.Helper()
	for _, st := range p {
		if st[0].Key == name {
			v, ok := st[0].Value.(bson.D)
			if !ok {
				t.Fatalf("%s stage has unexpected value %T", name, st[0].Value)
			}
			return v
		}
	}
	t.Fatalf("stage %s missing from %v", name, stageNames(p))
	return nil
}

func field(d bson.D, key string) (interface{}, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

func TestListPipelineOrderAndPaging(t *testing.T) {
	owner := primitive.NewObjectID()
	cases := []struct {
		name  string
		q     ListQuery
		dir   int
		names []string
	}{
		{"asc paged", ListQuery{Skip: 5, Limit: 5, Order: types.SortAsc}, 1,
			[]string{"$match", "$sort", "$skip", "$limit", "$lookup", "$unwind", "$project"}},
		{"desc unpaged", ListQuery{Order: types.SortDesc}, -1,
			[]string{"$match", "$sort", "$lookup", "$unwind", "$project"}},
		{"first page", ListQuery{Limit: 5}, 1,
			[]string{"$match", "$sort", "$limit", "$lookup", "$unwind", "$project"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := listPipeline(owner, tc.q)
			got := stageNames(p)
			if len(got) != len(tc.names) {
				t.Fatalf("stages %v want %v", got, tc.names)
			}
			for i := range got {
				if got[i] != tc.names[i] {
					t.Fatalf("stages %v want %v", got, tc.names)
				}
			}

			match := stage(t, p, "$match")
			if v, _ := field(match, "postedBy"); v != owner {
				t.Fatalf("match should scope to the owner, got %v", match)
			}
			sort := stage(t, p, "$sort")
			if len(sort) != 1 || sort[0].Key != "_id" || sort[0].Value != tc.dir {
				t.Fatalf("sort should be on _id %d, got %v", tc.dir, sort)
			}
			if tc.q.Skip > 0 {
				if v, _ := field(p[2], "$skip"); v != int64(tc.q.Skip) {
					t.Fatalf("unexpected skip %v", v)
				}
			}
		})
	}
}

func TestListPipelineResolvesOwnerWithoutPassword(t *testing.T) {
	p := listPipeline(primitive.NewObjectID(), ListQuery{Limit: 5})

	lookup := stage(t, p, "$lookup")
	want := map[string]string{
		"from":         dbpkg.UsersCollection,
		"localField":   "postedBy",
		"foreignField": "_id",
		"as":           "owner",
	}
	for k, v := range want {
		if got, _ := field(lookup, k); got != v {
			t.Fatalf("lookup %s = %v want %s", k, got, v)
		}
	}

	unwind := stage(t, p, "$unwind")
	if v, _ := field(unwind, "preserveNullAndEmptyArrays"); v != true {
		t.Fatalf("contacts of a deleted owner should survive the unwind")
	}

	project := stage(t, p, "$project")
	if v, ok := field(project, "owner.password"); !ok || v != 0 {
		t.Fatalf("owner password must be projected out, got %v", project)
	}
	if len(project) != 1 {
		t.Fatalf("projection should only drop the password, got %v", project)
	}
}
