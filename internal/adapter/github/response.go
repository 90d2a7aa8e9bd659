package github

import (
	"github.com/m-zajac/leadharvester/internal/app"
)

type searchResponse struct {
	Items []searchResponseItem `json:"items"`
}

type searchResponseItem struct {
	FullName    string                  `json:"full_name"`
	Description string                  `json:"description"`
	Stars       int                     `json:"stargazers_count"`
	Language    string                  `json:"language"`
	Owner       searchResponseItemOwner `json:"owner"`
}

type searchResponseItemOwner struct {
	Login string `json:"login"`
}

func (s searchResponse) ToRecords() []app.RepositoryRecord {
	rs := make([]app.RepositoryRecord, 0, len(s.Items))
	for _, i := range s.Items {
		rs = append(rs, app.RepositoryRecord{
			FullName:    i.FullName,
			OwnerLogin:  i.Owner.Login,
			Description: i.Description,
			Stars:       i.Stars,
			Language:    i.Language,
		})
	}

	return rs
}

type userResponse struct {
	Login   string `json:"login"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Bio     string `json:"bio"`
}

func (u userResponse) ToProfile() app.UserProfile {
	return app.UserProfile{
		Login:   u.Login,
		Name:    u.Name,
		Email:   u.Email,
		Company: u.Company,
		Bio:     u.Bio,
	}
}

type commitsResponse []struct {
	Commit struct {
		Author struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"author"`
	} `json:"commit"`
}
