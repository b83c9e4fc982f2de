package service

import (
	"context"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repository layer. They mirror the persistence
// semantics the services rely on: org scoping, duplicate-key errors and
// record-not-found sentinels.

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeBroadcaster struct {
	events []string
}

func (f *fakeBroadcaster) BroadcastEvent(event string, data interface{}) {
	f.events = append(f.events, event)
}

// --- Approvals ---

type fakeApprovalRepo struct {
	approvals map[uuid.UUID]*model.Approval
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{approvals: make(map[uuid.UUID]*model.Approval)}
}

func (f *fakeApprovalRepo) Create(ctx context.Context, approval *model.Approval) error {
	for _, existing := range f.approvals {
		if existing.OrgID == approval.OrgID && existing.ItemType == approval.ItemType && existing.ItemID == approval.ItemID {
			return gorm.ErrDuplicatedKey
		}
	}
	approval.ID = uuid.New()
	approval.CreatedAt = time.Now().UTC()
	clone := *approval
	f.approvals[approval.ID] = &clone
	return nil
}

func (f *fakeApprovalRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Approval, error) {
	if a, ok := f.approvals[id]; ok && a.OrgID == orgID {
		clone := *a
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApprovalRepo) FindByIDForUpdate(ctx context.Context, orgID, id uuid.UUID) (*model.Approval, error) {
	return f.FindByID(ctx, orgID, id)
}

func (f *fakeApprovalRepo) FindByItemForUpdate(ctx context.Context, orgID uuid.UUID, itemType string, itemID uuid.UUID) (*model.Approval, error) {
	for _, a := range f.approvals {
		if a.OrgID == orgID && a.ItemType == itemType && a.ItemID == itemID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApprovalRepo) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.Approval, int64, error) {
	var out []model.Approval
	for _, a := range f.approvals {
		if a.OrgID != orgID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeApprovalRepo) Update(ctx context.Context, approval *model.Approval) error {
	clone := *approval
	f.approvals[approval.ID] = &clone
	return nil
}

func (f *fakeApprovalRepo) DeleteAllForOrg(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var deleted int64
	for id, a := range f.approvals {
		if a.OrgID == orgID {
			delete(f.approvals, id)
			deleted++
		}
	}
	return deleted, nil
}

// --- Clients / contractors / employees ---

type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (f *fakeClientRepo) Create(ctx context.Context, client *model.Client) error {
	client.ID = uuid.New()
	client.CreatedAt = time.Now().UTC()
	clone := *client
	f.clients[client.ID] = &clone
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Client, error) {
	if c, ok := f.clients[id]; ok && c.OrgID == orgID {
		clone := *c
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClientRepo) List(ctx context.Context, orgID uuid.UUID, filter repository.ClientFilter) ([]model.Client, error) {
	var out []model.Client
	for _, c := range f.clients {
		if c.OrgID != orgID {
			continue
		}
		if filter.Status != "" && c.ClientStatus != filter.Status {
			continue
		}
		if filter.Department != "" && c.Service != filter.Department {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientRepo) ListActive(ctx context.Context, orgID uuid.UUID, department string) ([]model.Client, error) {
	return f.List(ctx, orgID, repository.ClientFilter{Status: model.ClientStatusActive, Department: department})
}

func (f *fakeClientRepo) Update(ctx context.Context, client *model.Client) error {
	clone := *client
	f.clients[client.ID] = &clone
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if c, ok := f.clients[id]; ok && c.OrgID == orgID {
		delete(f.clients, id)
	}
	return nil
}

type fakeContractorRepo struct {
	contractors map[uuid.UUID]*model.Contractor
}

func newFakeContractorRepo() *fakeContractorRepo {
	return &fakeContractorRepo{contractors: make(map[uuid.UUID]*model.Contractor)}
}

func (f *fakeContractorRepo) Create(ctx context.Context, contractor *model.Contractor) error {
	contractor.ID = uuid.New()
	contractor.CreatedAt = time.Now().UTC()
	clone := *contractor
	f.contractors[contractor.ID] = &clone
	return nil
}

func (f *fakeContractorRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Contractor, error) {
	if c, ok := f.contractors[id]; ok && c.OrgID == orgID {
		clone := *c
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeContractorRepo) List(ctx context.Context, orgID uuid.UUID, filter repository.PersonFilter) ([]model.Contractor, error) {
	var out []model.Contractor
	for _, c := range f.contractors {
		if c.OrgID != orgID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeContractorRepo) ListActive(ctx context.Context, orgID uuid.UUID) ([]model.Contractor, error) {
	return f.List(ctx, orgID, repository.PersonFilter{Status: model.StaffStatusActive})
}

func (f *fakeContractorRepo) Update(ctx context.Context, contractor *model.Contractor) error {
	clone := *contractor
	f.contractors[contractor.ID] = &clone
	return nil
}

func (f *fakeContractorRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if c, ok := f.contractors[id]; ok && c.OrgID == orgID {
		delete(f.contractors, id)
	}
	return nil
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	employee.ID = uuid.New()
	employee.CreatedAt = time.Now().UTC()
	clone := *employee
	f.employees[employee.ID] = &clone
	return nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Employee, error) {
	if e, ok := f.employees[id]; ok && e.OrgID == orgID {
		clone := *e
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, orgID uuid.UUID, filter repository.PersonFilter) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range f.employees {
		if e.OrgID != orgID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, orgID uuid.UUID) ([]model.Employee, error) {
	return f.List(ctx, orgID, repository.PersonFilter{Status: model.StaffStatusActive})
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	clone := *employee
	f.employees[employee.ID] = &clone
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if e, ok := f.employees[id]; ok && e.OrgID == orgID {
		delete(f.employees, id)
	}
	return nil
}

type fakeAssetRepo struct {
	assets map[uuid.UUID]*model.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[uuid.UUID]*model.Asset)}
}

func (f *fakeAssetRepo) Create(ctx context.Context, asset *model.Asset) error {
	asset.ID = uuid.New()
	asset.CreatedAt = time.Now().UTC()
	clone := *asset
	f.assets[asset.ID] = &clone
	return nil
}

func (f *fakeAssetRepo) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Asset, error) {
	if a, ok := f.assets[id]; ok && a.OrgID == orgID {
		clone := *a
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssetRepo) List(ctx context.Context, orgID uuid.UUID, department string) ([]model.Asset, error) {
	var out []model.Asset
	for _, a := range f.assets {
		if a.OrgID != orgID {
			continue
		}
		if department != "" && a.Department != department {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssetRepo) Update(ctx context.Context, asset *model.Asset) error {
	clone := *asset
	f.assets[asset.ID] = &clone
	return nil
}

func (f *fakeAssetRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if a, ok := f.assets[id]; ok && a.OrgID == orgID {
		delete(f.assets, id)
	}
	return nil
}

// --- Stock ---

type fakeStockRepo struct {
	availability map[uuid.UUID]*model.StockAvailability
	transactions []model.StockTransaction
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{availability: make(map[uuid.UUID]*model.StockAvailability)}
}

func (f *fakeStockRepo) FindAvailabilityForUpdate(ctx context.Context, orgID uuid.UUID, productName string) (*model.StockAvailability, error) {
	for _, s := range f.availability {
		if s.OrgID == orgID && s.ProductName == productName {
			clone := *s
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStockRepo) CreateAvailability(ctx context.Context, stock *model.StockAvailability) error {
	for _, s := range f.availability {
		if s.OrgID == stock.OrgID && s.ProductName == stock.ProductName {
			return gorm.ErrDuplicatedKey
		}
	}
	stock.ID = uuid.New()
	clone := *stock
	f.availability[stock.ID] = &clone
	return nil
}

func (f *fakeStockRepo) UpdateAvailability(ctx context.Context, stock *model.StockAvailability) error {
	clone := *stock
	f.availability[stock.ID] = &clone
	return nil
}

func (f *fakeStockRepo) ListAvailability(ctx context.Context, orgID uuid.UUID) ([]model.StockAvailability, error) {
	var out []model.StockAvailability
	for _, s := range f.availability {
		if s.OrgID == orgID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) FindAvailabilityByID(ctx context.Context, orgID, id uuid.UUID) (*model.StockAvailability, error) {
	if s, ok := f.availability[id]; ok && s.OrgID == orgID {
		clone := *s
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStockRepo) AppendTransaction(ctx context.Context, tx *model.StockTransaction) error {
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now().UTC()
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeStockRepo) ListTransactions(ctx context.Context, orgID uuid.UUID) ([]model.StockTransaction, error) {
	var out []model.StockTransaction
	for _, tx := range f.transactions {
		if tx.OrgID == orgID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListTransactionsForProduct(ctx context.Context, orgID uuid.UUID, productName string) ([]model.StockTransaction, error) {
	var out []model.StockTransaction
	for _, tx := range f.transactions {
		if tx.OrgID == orgID && tx.ProductName == productName {
			out = append(out, tx)
		}
	}
	return out, nil
}

// --- Users ---

type fakeUserRepo struct {
	orgs  map[uuid.UUID]*model.Organization
	users map[uuid.UUID]*model.User
	otps  map[string]*model.OTPCode // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		orgs:  make(map[uuid.UUID]*model.Organization),
		users: make(map[uuid.UUID]*model.User),
		otps:  make(map[string]*model.OTPCode),
	}
}

func (f *fakeUserRepo) CreateOrg(ctx context.Context, org *model.Organization) error {
	org.ID = uuid.New()
	clone := *org
	f.orgs[org.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetOrgByID(ctx context.Context, orgID uuid.UUID) (*model.Organization, error) {
	if o, ok := f.orgs[orgID]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateOrg(ctx context.Context, org *model.Organization) error {
	clone := *org
	f.orgs[org.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.OrgID == user.OrgID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uuid.New()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok && u.OrgID == orgID {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.OrgID == orgID && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, orgID uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.OrgID == orgID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if u, ok := f.users[id]; ok && u.OrgID == orgID {
		delete(f.users, id)
	}
	return nil
}

func (f *fakeUserRepo) UpsertOTP(ctx context.Context, otp *model.OTPCode) error {
	clone := *otp
	f.otps[otp.Email] = &clone
	return nil
}

func (f *fakeUserRepo) GetOTP(ctx context.Context, email string) (*model.OTPCode, error) {
	if o, ok := f.otps[email]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}
