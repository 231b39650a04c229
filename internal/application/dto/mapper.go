package dto

import "github.com/jhoicas/solarsync-api/internal/domain/entity"

// FromLead convierte la entidad a su salida.
func FromLead(l *entity.Lead) LeadResponse {
	return LeadResponse{
		ID:                     l.ID,
		InstallerID:            l.InstallerID,
		SupplierID:             l.SupplierID,
		ProjectDescription:     l.ProjectDescription,
		ProjectType:            l.ProjectType,
		EstimatedBudget:        l.EstimatedBudget,
		Location:               l.Location,
		ContactEmail:           l.ContactEmail,
		ContactPhone:           l.ContactPhone,
		PreferredContactMethod: l.PreferredContactMethod,
		Timeline:               l.Timeline,
		Status:                 string(l.Status),
		Notes:                  l.Notes,
		CreatedAt:              l.CreatedAt,
		UpdatedAt:              l.UpdatedAt,
	}
}

// FromLeads convierte una lista conservando el orden.
func FromLeads(list []*entity.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, FromLead(l))
	}
	return out
}

// FromCompany convierte la entidad a su salida pública.
func FromCompany(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Phone:       c.Phone,
		Email:       c.Email,
		Website:     c.Website,
		CreatedAt:   c.CreatedAt,
	}
}

// FromProduct convierte la entidad a su salida.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		CreatedAt:   p.CreatedAt,
	}
}

// FromPlan convierte la entidad a su salida.
func FromPlan(p *entity.Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		BillingCycle: string(p.BillingCycle),
		MaxProducts:  p.MaxProducts,
		MaxUsers:     p.MaxUsers,
		Features:     p.Features,
		CreatedAt:    p.CreatedAt,
	}
}

// FromSubscription convierte la entidad a su salida.
func FromSubscription(s *entity.CompanySubscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		PlanID:    s.PlanID,
		Status:    string(s.Status),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
