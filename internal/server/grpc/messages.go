package grpc

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// IdentityReply is the WhoAmI answer. On the wire it travels as a
// structpb.Struct keyed by the json tag names.
type IdentityReply struct {
	SubjectID string `json:"subjectId"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// ContributorReply is one contributor as returned by the approval methods.
type ContributorReply struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

func (r *IdentityReply) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"subjectId": structpb.NewStringValue(r.SubjectID),
		"role":      structpb.NewStringValue(r.Role),
		"name":      structpb.NewStringValue(r.Name),
		"email":     structpb.NewStringValue(r.Email),
	}}
}

// IdentityFromStruct reads an IdentityReply back. Missing keys stay empty.
func IdentityFromStruct(s *structpb.Struct) *IdentityReply {
	f := s.GetFields()
	return &IdentityReply{
		SubjectID: f["subjectId"].GetStringValue(),
		Role:      f["role"].GetStringValue(),
		Name:      f["name"].GetStringValue(),
		Email:     f["email"].GetStringValue(),
	}
}

func (r *ContributorReply) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":     structpb.NewStringValue(r.ID),
		"name":   structpb.NewStringValue(r.Name),
		"email":  structpb.NewStringValue(r.Email),
		"status": structpb.NewStringValue(r.Status),
	}}
}

func ContributorFromStruct(s *structpb.Struct) *ContributorReply {
	f := s.GetFields()
	return &ContributorReply{
		ID:     f["id"].GetStringValue(),
		Name:   f["name"].GetStringValue(),
		Email:  f["email"].GetStringValue(),
		Status: f["status"].GetStringValue(),
	}
}

// ContributorsFromList skips list entries that are not structs.
func ContributorsFromList(l *structpb.ListValue) []*ContributorReply {
	out := make([]*ContributorReply, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		if s := v.GetStructValue(); s != nil {
			out = append(out, ContributorFromStruct(s))
		}
	}
	return out
}
