package repository

import "rugstore/internal/domain/repository"

type Repositories struct {
	Products    repository.ProductRepository
	Collections repository.CollectionRepository
	WeaveTypes  repository.WeaveTypeRepository
	Leads       repository.LeadRepository
	Content     repository.ContentRepository
}

func New(stores Stores) Repositories {
	return Repositories{
		Products:    NewProductRepository(stores),
		Collections: NewCollectionRepository(stores),
		WeaveTypes:  NewWeaveTypeRepository(stores),
		Leads:       NewLeadRepository(stores),
		Content:     NewContentRepository(stores),
	}
}
