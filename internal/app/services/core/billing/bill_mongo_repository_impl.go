package billing

import (
	"context"
	"time"

	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BillMongoRepository struct {
	Collection *mongo.Collection
}

func NewBillMongoRepository(db *mongo.Client, dbName string) contracts.BillRepository {
	return &BillMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBills),
	}
}

func (repo *BillMongoRepository) CreateBill(ctx context.Context, bill *models.Bill) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, bill)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *BillMongoRepository) FindAll(ctx context.Context, request *requests.FindAllBills) ([]models.Bill, int, error) {
	filter := bson.M{}
	if request.PatientID != "" {
		filter["patient_id"] = request.PatientID
	}
	if request.Status != "" {
		filter["status"] = request.Status
	}

	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSkip(int64((request.Page - 1) * request.PageSize)).
		SetLimit(int64(request.PageSize)).
		SetSort(bson.M{"created_at": -1})

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	var bills []models.Bill
	err = cursor.All(ctx, &bills)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bills, int(total), nil
}

func (repo *BillMongoRepository) FindByID(ctx context.Context, billID string) (*models.Bill, error) {
	objectID, err := primitive.ObjectIDFromHex(billID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var bill models.Bill
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &bill, nil
}

// FindOpenPastDue returns pending and partial bills with a due date behind
// now. Bills without a due date never age into overdue.
func (repo *BillMongoRepository) FindOpenPastDue(ctx context.Context, now time.Time) ([]models.Bill, error) {
	filter := bson.M{
		"status":   bson.M{"$in": []models.BillStatus{models.BillPending, models.BillPartial}},
		"due_date": bson.M{"$lt": now, "$ne": time.Time{}},
	}

	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var bills []models.Bill
	err = cursor.All(ctx, &bills)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bills, nil
}

func (repo *BillMongoRepository) UpdateBill(ctx context.Context, bill *models.Bill) error {
	objectID, err := primitive.ObjectIDFromHex(bill.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	filter := bson.M{"_id": objectID}
	update := bson.M{"$set": bill.ConvertToBsonM()}

	_, err = repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *BillMongoRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := repo.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	err = cursor.All(ctx, &rows)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// SumRevenue totals money actually received across every bill.
func (repo *BillMongoRepository) SumRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$paid_amount"}}},
	}
	return repo.sumPipeline(ctx, pipeline)
}

// SumOutstanding totals the open balance of bills that still expect money.
func (repo *BillMongoRepository) SumOutstanding(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": []models.BillStatus{models.BillPending, models.BillPartial, models.BillOverdue}}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$balance"}}},
	}
	return repo.sumPipeline(ctx, pipeline)
}

func (repo *BillMongoRepository) sumPipeline(ctx context.Context, pipeline []bson.M) (float64, error) {
	cursor, err := repo.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, exceptions.ErrMongoDBAggregate(err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	err = cursor.All(ctx, &rows)
	if err != nil {
		return 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
